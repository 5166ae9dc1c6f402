package cmd

import (
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/covered-news/covered/internal/prefs"
	"github.com/covered-news/covered/internal/tui"
	"github.com/covered-news/covered/internal/utils"
	"github.com/covered-news/covered/pkg/api"
	"github.com/covered-news/covered/pkg/auth"
	"github.com/covered-news/covered/pkg/storage"

	homedir "github.com/mitchellh/go-homedir"
)

// buildDeps wires the clients and local state shared by the interactive app
// and the one-shot subcommands. The returned cleanup closes the journal.
func buildDeps() (tui.Deps, func(), error) {
	home, err := homedir.Dir()
	if err != nil {
		return tui.Deps{}, nil, err
	}

	store, err := prefs.Open(filepath.Join(home, ".covered"))
	if err != nil {
		return tui.Deps{}, nil, err
	}

	authClient := auth.NewClient(viper.GetString("auth.base_url"))

	deps := tui.Deps{
		Store:      store,
		Session:    prefs.NewSession(store, authClient),
		API:        api.NewClient(viper.GetString("api.base_url")),
		Auth:       authClient,
		DeviceID:   viper.GetString("device_id"),
		TOTPSecret: viper.GetString("auth.totp_secret"),
	}

	cleanup := func() {}

	// The journal is best-effort: a broken local database never blocks
	// verification.
	if path, err := storage.DefaultPath(); err == nil {
		if journal, err := storage.Open(path); err == nil {
			deps.Journal = journal
			cleanup = func() { journal.Close() }
		} else {
			utils.Log.Debug("journal unavailable: ", err)
		}
	}

	return deps, cleanup, nil
}
