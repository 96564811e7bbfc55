package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/ericbergkvist/expenses-tracking/internal/config"
	"github.com/ericbergkvist/expenses-tracking/internal/logger"
	"github.com/ericbergkvist/expenses-tracking/internal/service"
	"github.com/ericbergkvist/expenses-tracking/internal/taxonomy"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle = lipgloss.NewStyle().Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
)

func main() {
	var (
		input    = flag.String("input", "", "transactions CSV to import")
		output   = flag.String("output", "", "optional path to write the retained transactions back out as CSV")
		taxPath  = flag.String("taxonomy", "", "override the taxonomy JSON path")
		seedPath = flag.String("seed", "", "override the taxonomy seed TOML path")
		auto     = flag.Bool("auto", true, "create categories and sub-categories from the imported rows")
		debug    = flag.Bool("debug", false, "log every rejected row")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *taxPath == "" {
		*taxPath = cfg.Taxonomy.Path
	}
	if *seedPath == "" {
		*seedPath = cfg.Taxonomy.SeedPath
	}
	autoCreate := *auto && cfg.Import.AutoCreate

	level := logger.ParseLevel(cfg.Logging.Level)
	if *debug {
		level = logger.ParseLevel("debug")
	}
	logg := logger.New(level)

	store, err := openTaxonomy(*taxPath, *seedPath)
	if err != nil {
		log.Fatalf("taxonomy: %v", err)
	}

	tracker := service.NewExpenseTracker(store, logg)

	if *input != "" {
		f, err := os.Open(*input)
		if err != nil {
			log.Fatalf("open input: %v", err)
		}
		res, err := tracker.LoadTransactions(f, autoCreate)
		f.Close()
		if err != nil {
			log.Fatalf("import %s: %v", *input, err)
		}
		printSummary(*input, res, tracker.Sum())
	}

	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatalf("create output: %v", err)
		}
		if err := tracker.WriteTransactions(f); err != nil {
			f.Close()
			log.Fatalf("write output: %v", err)
		}
		if err := f.Close(); err != nil {
			log.Fatalf("close output: %v", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(*taxPath), 0o755); err != nil {
		log.Fatalf("mkdir taxonomy dir: %v", err)
	}
	if err := tracker.SaveTaxonomy(*taxPath); err != nil {
		log.Fatalf("save taxonomy: %v", err)
	}
}

// openTaxonomy loads the persisted taxonomy, falling back to the TOML seed
// on first run and to an empty store when neither file exists.
func openTaxonomy(taxPath, seedPath string) (*taxonomy.Store, error) {
	if _, err := os.Stat(taxPath); err == nil {
		return taxonomy.Load(taxPath)
	}
	if _, err := os.Stat(seedPath); err == nil {
		return taxonomy.LoadSeed(seedPath)
	}
	return taxonomy.NewStore(), nil
}

func printSummary(input string, res service.BatchResult, sum float64) {
	fmt.Println(titleStyle.Render("Import " + filepath.Base(input)))
	fmt.Printf("%s %s\n", labelStyle.Render("accepted:"), valueStyle.Render(fmt.Sprintf("%d", res.Accepted)))
	rejected := fmt.Sprintf("%d", res.Rejected)
	if res.Rejected > 0 {
		rejected = warnStyle.Render(rejected)
	}
	fmt.Printf("%s %s\n", labelStyle.Render("rejected:"), rejected)
	fmt.Printf("%s %s\n", labelStyle.Render("sum:"), valueStyle.Render(fmt.Sprintf("%.2f", sum)))
}
