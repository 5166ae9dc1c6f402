package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/covered-news/covered/internal/utils"
	"github.com/covered-news/covered/pkg/api"
	"github.com/covered-news/covered/pkg/classify"
	"github.com/covered-news/covered/pkg/storage"
	"github.com/covered-news/covered/pkg/verdict"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <texto o enlace>",
	Short: "Verifica un texto o enlace y muestra el veredicto.",
	Long: `Sends one claim or link to the verification backend and prints the
verdict. Input is sent as text unless --link is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asLink, _ := cmd.Flags().GetBool("link")
		asJSON, _ := cmd.Flags().GetBool("json")

		input := strings.TrimSpace(strings.Join(args, " "))
		if input == "" {
			return fmt.Errorf("nada que verificar")
		}

		req := api.VerificationRequest{
			UsuarioID:     "anonimo",
			DispositivoID: viper.GetString("device_id"),
		}
		if asLink {
			link, err := classify.NormalizeLink(input)
			if err != nil {
				return err
			}
			req.URL = link
		} else {
			req.Texto = input
			if classify.IsURLShaped(input) {
				utils.Log.Warn("input looks like a link; use --link to verify it as a URL")
			}
		}

		client := api.NewClient(viper.GetString("api.base_url"))
		result, err := client.Verify(cmd.Context(), req)
		if err != nil {
			return err
		}

		journalResult(req, result)

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		display := verdict.Present(verdict.Code(result.Resultado))
		fmt.Println(display.Title)
		if result.Razonamiento != "" {
			fmt.Println()
			fmt.Println(result.Razonamiento)
		}
		for k, v := range result.Detalle {
			fmt.Printf("%s: %s\n", utils.Capitalize(k), v)
		}
		return nil
	},
}

// journalResult appends a one-shot verification to the local journal,
// best-effort.
func journalResult(req api.VerificationRequest, result *api.VerificationResult) {
	path, err := storage.DefaultPath()
	if err != nil {
		return
	}
	journal, err := storage.Open(path)
	if err != nil {
		utils.Log.Debug("journal unavailable: ", err)
		return
	}
	defer journal.Close()

	err = journal.Append(context.Background(), storage.Record{
		Texto:        req.Texto,
		URL:          req.URL,
		Resultado:    result.Resultado,
		Razonamiento: result.Razonamiento,
		ConsultaID:   result.ConsultaID,
	})
	if err != nil {
		utils.Log.Debug("journal append failed: ", err)
	}
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().BoolP("link", "u", false, "Treat the input as a URL instead of text")
	verifyCmd.Flags().BoolP("json", "j", false, "Print the raw API response as JSON")
}
