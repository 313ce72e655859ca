package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/pulkit-saini/classroom-connect/types"
)

func CommandLogin(cmd *cobra.Command, args []string) {
	if len(args) != 1 {
		cmd.Help()
		return
	}
	token := args[0]

	store := mustStore()
	if gateway, _ := cmd.Flags().GetString("gateway"); gateway != "" {
		if err := store.SetGateway(gateway); err != nil {
			log.Fatalf("%v", err)
		}
	}

	state, err := store.Login(ctx(), token)
	if err != nil {
		log.Fatalf("login failed: %v", err)
	}
	fmt.Printf("logged in as %s\n", state.Profile.DisplayName())
	fmt.Printf("role: %s\n", state.Role)
	if state.Role == types.RoleStudent {
		fmt.Println("(role falls back to student whenever detection cannot do better)")
	}
}

func CommandLogout(cmd *cobra.Command, args []string) {
	if len(args) != 0 {
		cmd.Help()
		return
	}
	store := mustStore()
	if err := store.Logout(); err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Println("logged out")
}

func CommandWhoami(cmd *cobra.Command, args []string) {
	if len(args) != 0 {
		cmd.Help()
		return
	}
	_, state, client := mustLoadSession()

	profile, err := client.GetMyProfile(ctx())
	if err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Printf("signed in as %s\n", profile.DisplayName())
	if profile.EmailAddress != "" {
		fmt.Printf("email:   %s\n", profile.EmailAddress)
	}
	fmt.Printf("user id: %s\n", profile.ID)
	fmt.Printf("role:    %s\n", state.Role)
	if state.Gateway != "" {
		fmt.Printf("gateway: %s\n", state.Gateway)
	}
}
