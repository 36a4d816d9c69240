// Package docqacmder
package docqacmder

import (
	"github.com/spf13/cobra"

	chatcmder "github.com/docfold/docqa/cmd/docqa/chat"
	servecmder "github.com/docfold/docqa/cmd/docqa/serve"
)

const docqaLongDesc string = `Docqa answers questions over your PDF documents.

Run services using:
  docqa serve    Run the question-answering API server
  docqa chat     Interactive chat against a running server`

const docqaShortDesc string = "Docqa - PDF question answering"

func NewDocqaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docqa",
		Short: docqaShortDesc,
		Long:  docqaLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")

	// Add subcommands
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(chatcmder.NewChatCmd())

	return cmd
}
