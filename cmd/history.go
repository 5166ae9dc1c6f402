package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/covered-news/covered/internal/utils"
	"github.com/covered-news/covered/pkg/api"
	"github.com/covered-news/covered/pkg/storage"
	"github.com/covered-news/covered/pkg/verdict"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Muestra las verificaciones anteriores.",
	Long:  "Lists past verifications from the backend, or from the local journal with --local.",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")
		local, _ := cmd.Flags().GetBool("local")

		if local {
			return printLocalHistory(cmd, limit)
		}

		client := api.NewClient(viper.GetString("api.base_url"))
		page, err := client.History(cmd.Context(), limit, offset)
		if err != nil {
			return err
		}

		if len(page.Consultas) == 0 {
			fmt.Println("No hay verificaciones.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "FECHA\tRESULTADO\tCONSULTA\t")
		for _, item := range page.Consultas {
			text := item.Texto
			if text == "" {
				text = item.URL
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t\n",
				utils.FormatTimestamp(item.Fecha),
				verdict.Present(verdict.Code(item.Resultado)).Status,
				utils.Truncate(text, 60))
		}
		w.Flush()

		fmt.Printf("\nMostrando %d de %d\n", len(page.Consultas), page.Total)
		return nil
	},
}

func printLocalHistory(cmd *cobra.Command, limit int) error {
	path, err := storage.DefaultPath()
	if err != nil {
		return err
	}
	journal, err := storage.Open(path)
	if err != nil {
		return fmt.Errorf("no local journal: %w", err)
	}
	defer journal.Close()

	records, err := journal.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No hay verificaciones.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "FECHA\tRESULTADO\tCONSULTA\t")
	for _, rec := range records {
		text := rec.Texto
		if text == "" {
			text = rec.URL
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t\n",
			rec.CreatedAt.Format("2006/01/02 15:04"),
			verdict.Present(verdict.Code(rec.Resultado)).Status,
			utils.Truncate(text, 60))
	}
	w.Flush()
	return nil
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", api.DefaultHistoryLimit, "Maximum entries to list")
	historyCmd.Flags().IntP("offset", "o", 0, "Entries to skip")
	historyCmd.Flags().BoolP("local", "", false, "Read the local journal instead of the backend")
}
