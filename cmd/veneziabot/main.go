// Command veneziabot runs the Heladería Venezia assistant from a terminal:
// an interactive chat loop, one-shot questions and an engine status report.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"veneziabot/internal/business"
	"veneziabot/internal/config"
	"veneziabot/internal/engine"
	"veneziabot/internal/gemini"
	"veneziabot/internal/kvstore"
)

var (
	flagConfig  string
	flagData    string
	flagVerbose bool
)

func main() {
	root := &cobra.Command{
		Use:           "veneziabot",
		Short:         "Asistente conversacional de la Heladería Venezia",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "veneziabot.yaml", "ruta del archivo de configuración")
	root.PersistentFlags().StringVar(&flagData, "data", "", "archivo JSON con el estado del negocio")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "logging de depuración")

	root.AddCommand(chatCmd(), askCmd(), statusCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger() (*zap.Logger, error) {
	if flagVerbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// fileProvider reads the business snapshot from a JSON file on every call so
// edits to the file show up mid-conversation.
type fileProvider struct {
	path string
}

func (p fileProvider) Snapshot(ctx context.Context) (business.Snapshot, error) {
	var snap business.Snapshot
	if p.path == "" {
		return demoSnapshot(), nil
	}
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return snap, fmt.Errorf("read business data: %w", err)
	}
	if err := json.Unmarshal(raw, &snap); err != nil {
		return snap, fmt.Errorf("parse business data: %w", err)
	}
	return snap, nil
}

func demoSnapshot() business.Snapshot {
	return business.Snapshot{
		Products: []business.Product{
			{ID: 1, Name: "Helado Chocolate", Stock: 25, MinimumStock: 10, Price: 4500, Category: "Helado", Active: true},
			{ID: 2, Name: "Helado Vainilla", Stock: 8, MinimumStock: 10, Price: 4200, Category: "Helado", Active: true},
			{ID: 3, Name: "Helado Fresa", Stock: 15, MinimumStock: 10, Price: 4300, Category: "Helado", Active: true},
			{ID: 4, Name: "Helado Dulce de Leche", Stock: 2, MinimumStock: 10, Price: 4800, Category: "Helado", Active: true},
		},
		SalesToday: business.DailySales{Total: 38500, Transactions: 9},
		LowStock: []business.LowStockAlert{
			{Name: "Helado Vainilla", Stock: 8, Needed: 2},
			{Name: "Helado Dulce de Leche", Stock: 2, Needed: 8},
		},
	}
}

// demoExecutor acknowledges mutations without a backing store. A real
// deployment wires the POS backend here.
type demoExecutor struct {
	log *zap.Logger
}

func (d demoExecutor) Execute(ctx context.Context, action business.ActionName, params map[string]any) (business.ActionResult, error) {
	d.log.Info("executing action", zap.String("action", string(action)), zap.Any("params", params))
	return business.ActionResult{Success: true, Message: "ok", Data: params}, nil
}

func buildEngine(log *zap.Logger) (*engine.Engine, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	var quotaStore kvstore.Store
	if cfg.Quota.StorePath != "" {
		quotaStore, err = kvstore.NewSQLite(cfg.Quota.StorePath)
		if err != nil {
			log.Warn("quota store unavailable, tracking in memory", zap.Error(err))
			quotaStore = kvstore.NewMemory()
		}
	} else {
		quotaStore = kvstore.NewMemory()
	}

	var generative engine.GenerativeTier
	if cfg.Gemini.APIKey != "" {
		generative = gemini.NewClient(gemini.Config{
			APIKey:  cfg.Gemini.APIKey,
			BaseURL: cfg.Gemini.BaseURL,
			Model:   cfg.Gemini.Model,
			Timeout: cfg.GeminiTimeout(),
		}, log.Named("gemini"))
	}

	eng := engine.New(
		fileProvider{path: flagData},
		demoExecutor{log: log.Named("executor")},
		generative,
		engine.Options{
			CacheSize:       cfg.Cache.MaxSize,
			CacheTTL:        cfg.CacheTTL(),
			HistoryLimit:    cfg.HistoryLimit,
			TierFingerprint: cfg.Gemini.Model,
			PendingTTL:      cfg.PendingTTL(),
			PendingCapacity: cfg.Pending.Capacity,
			QuotaStore:      quotaStore,
			DailyQuota:      cfg.Quota.DailyLimit,
		},
		log,
	)
	return eng, nil
}

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Conversación interactiva",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Sync()

			eng, err := buildEngine(log)
			if err != nil {
				return err
			}
			eng.Gate().StartSweeper(0)
			defer eng.Gate().Stop()

			fmt.Println("🍦 Asistente Venezia. Escribe un mensaje (Ctrl+D para salir).")
			scanner := bufio.NewScanner(os.Stdin)
			pendingID := ""
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					break
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}

				ctx := cmd.Context()
				var resp engine.Response
				if pendingID != "" && isYes(line) {
					resp = eng.ConfirmAction(ctx, pendingID)
					pendingID = ""
				} else if pendingID != "" && isNo(line) {
					resp = eng.CancelAction(pendingID)
					pendingID = ""
				} else {
					resp = eng.ProcessMessage(ctx, "cli", line)
					if resp.NeedsConfirmation {
						pendingID = resp.PendingActionID
					}
				}

				fmt.Println()
				fmt.Println(resp.Message)
				if len(resp.Suggestions) > 0 {
					fmt.Println("\n💡 " + strings.Join(resp.Suggestions, " | "))
				}
				fmt.Println()
			}
			return scanner.Err()
		},
	}
}

func isYes(s string) bool {
	switch strings.ToLower(s) {
	case "si", "sí", "s", "yes", "confirmar", "ok", "dale":
		return true
	}
	return false
}

func isNo(s string) bool {
	switch strings.ToLower(s) {
	case "no", "n", "cancelar", "cancel":
		return true
	}
	return false
}

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask [mensaje]",
		Short: "Pregunta única, respuesta por stdout",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Sync()

			eng, err := buildEngine(log)
			if err != nil {
				return err
			}
			resp := eng.ProcessMessage(cmd.Context(), "cli", strings.Join(args, " "))
			fmt.Println(resp.Message)
			if flagVerbose {
				fmt.Fprintf(os.Stderr, "[source=%s level=%d cached=%v]\n", resp.Source, resp.FallbackLevel, resp.Cached)
			}
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Estado del motor (cache, cuota, acciones pendientes)",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Sync()

			eng, err := buildEngine(log)
			if err != nil {
				return err
			}
			st := eng.CurrentStatus(cmd.Context())
			out, err := json.MarshalIndent(st, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}
