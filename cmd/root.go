package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "imagehub-web",
		Short: "Web front-end for the ImageHub image service",
		Long: `imagehub-web serves the ImageHub screens: the public landing page,
login and signup, the image dashboard and the user administration panel.

Every data operation is forwarded to the ImageHub REST API configured with
API_BASE_URL. Sessions are kept server-side in Redis, MongoDB or memory.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(newServeCmd())

	return cmd
}
