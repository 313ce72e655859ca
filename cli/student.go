package main

import (
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pulkit-saini/classroom-connect/drive"
)

func CommandTurnIn(cmd *cobra.Command, args []string) {
	if len(args) != 2 {
		cmd.Help()
		return
	}
	courseID, workID := args[0], args[1]
	_, _, client := mustLoadSession()

	sub := client.GetMySubmission(ctx(), courseID, workID)
	if sub == nil {
		log.Fatalf("no submission found for this assignment")
	}
	if err := client.TurnIn(ctx(), courseID, workID, sub.ID); err != nil {
		log.Fatalf("%v", err)
	}

	// re-fetch so the report reflects what the service recorded
	if sub = client.GetMySubmission(ctx(), courseID, workID); sub != nil {
		fmt.Printf("turned in: %s\n", sub.DisplayStatus())
	} else {
		fmt.Println("turned in")
	}
}

func CommandReclaim(cmd *cobra.Command, args []string) {
	if len(args) != 2 {
		cmd.Help()
		return
	}
	courseID, workID := args[0], args[1]
	_, _, client := mustLoadSession()

	sub := client.GetMySubmission(ctx(), courseID, workID)
	if sub == nil {
		log.Fatalf("no submission found for this assignment")
	}
	if !sub.IsComplete() {
		log.Fatalf("submission is not turned in, nothing to reclaim")
	}
	if err := client.Reclaim(ctx(), courseID, workID, sub.ID); err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Println("submission reclaimed; you can edit and turn it in again")
}

func CommandAttachLink(cmd *cobra.Command, args []string) {
	if len(args) != 3 {
		cmd.Help()
		return
	}
	courseID, workID, url := args[0], args[1], args[2]
	_, _, client := mustLoadSession()

	sub := client.GetMySubmission(ctx(), courseID, workID)
	if sub == nil {
		log.Fatalf("no submission found for this assignment")
	}
	if err := client.AddLinkAttachment(ctx(), courseID, workID, sub.ID, url); err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Printf("attached %s\n", url)
}

func CommandAttachFile(cmd *cobra.Command, args []string) {
	if len(args) != 3 {
		cmd.Help()
		return
	}
	courseID, workID, path := args[0], args[1], args[2]
	_, state, client := mustLoadSession()

	sub := client.GetMySubmission(ctx(), courseID, workID)
	if sub == nil {
		log.Fatalf("no submission found for this assignment")
	}

	fp, err := os.Open(path)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer fp.Close()

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	driveClient := drive.NewClient(state.Token)
	uploaded, err := driveClient.UploadFile(ctx(), filepath.Base(path), mimeType, fp)
	if err != nil {
		// the file may exist in Drive without being shareable; say which
		if nse, ok := err.(*drive.NotShareableError); ok {
			log.Printf("uploaded %s as Drive file %s, but could not make it shareable", nse.FileName, nse.FileID)
			log.Fatalf("  delete it or fix sharing, then try again: %v", nse.Err)
		}
		log.Fatalf("%v", err)
	}
	fmt.Printf("uploaded %s as Drive file %s\n", uploaded.Name, uploaded.ID)

	if err := client.AddDriveFileAttachment(ctx(), courseID, workID, sub.ID, uploaded.ID); err != nil {
		log.Fatalf("attaching uploaded file: %v", err)
	}
	fmt.Println("attached to your submission")
	if uploaded.WebViewLink != "" {
		fmt.Printf("view at %s\n", uploaded.WebViewLink)
	}
}
