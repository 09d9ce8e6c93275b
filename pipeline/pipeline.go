package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"triplecrown-scraper/chart"
	"triplecrown-scraper/config"
	"triplecrown-scraper/db"
	"triplecrown-scraper/fetcher"
	"triplecrown-scraper/filter"
	"triplecrown-scraper/models"
	"triplecrown-scraper/notify"
	"triplecrown-scraper/parser"
	"triplecrown-scraper/sheets"
	"triplecrown-scraper/store"

	"github.com/jedib0t/go-pretty/v6/table"
)

var (
	// ErrFetch wraps any failure to retrieve the source page
	ErrFetch = errors.New("fetch failed")
	// ErrSave wraps a failure to write the output file
	ErrSave = errors.New("save failed")
)

// previewRows is how many records are echoed after a scrape
const previewRows = 10

// Result describes what one run produced
type Result struct {
	Records []models.Record
	// ScrapeErr is set when fetching or parsing failed and the run fell back
	// to an empty dataset
	ScrapeErr  error
	Saved      bool
	FileExists bool
}

// Pipeline runs fetch, parse, save and plot for one configuration
type Pipeline struct {
	cfg     *config.Config
	fetcher fetcher.Fetcher
	parser  *parser.Parser
	filter  *filter.Filter
	out     io.Writer
}

// New creates a pipeline that prints its progress to out
func New(cfg *config.Config, f fetcher.Fetcher, out io.Writer) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		fetcher: f,
		parser:  parser.NewParser(cfg.Table.Class, cfg.Table.Caption, cfg.Table.FootnoteColspan),
		filter:  filter.NewFilter(cfg),
		out:     out,
	}
}

// Scrape fetches the source page and extracts its records
func (p *Pipeline) Scrape(ctx context.Context) ([]models.Record, error) {
	html, err := p.fetcher.Fetch(ctx, p.cfg.Source.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	records, err := p.parser.ParseHTML(html)
	if err != nil {
		return nil, err
	}

	return records, nil
}

// Run scrapes and persists. Fetch and parse failures degrade to an empty
// dataset; a failed save is returned wrapped in ErrSave.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	res := &Result{}

	records, err := p.Scrape(ctx)
	switch {
	case errors.Is(err, parser.ErrTableNotFound):
		fmt.Fprintln(p.out, "Could not find")
		res.ScrapeErr = err
	case err != nil:
		fmt.Fprintf(p.out, "Error during scraping: %v\n", err)
		res.ScrapeErr = err
	}

	if len(records) > 0 {
		p.preview(records)

		if err := store.Save(records, p.cfg.Output.File); err != nil {
			return res, fmt.Errorf("%w: %w", ErrSave, err)
		}
		fmt.Fprintf(p.out, "data saved to %s\n", p.cfg.Output.File)
		res.Saved = true

		p.export(ctx, records)
	} else {
		fmt.Fprintln(p.out, "no horse data to steal")
	}

	res.Records = records
	if res.Records == nil {
		res.Records = []models.Record{}
	}

	res.FileExists = store.Exists(p.cfg.Output.File)
	if res.FileExists {
		fmt.Fprintf(p.out, "%s exists\n", p.cfg.Output.File)
	} else {
		fmt.Fprintf(p.out, "%s does not exist\n", p.cfg.Output.File)
	}

	return res, nil
}

// Plot filters records and renders the chart. Errors here are not degraded:
// a bad year or an unwritable chart file is returned to the caller.
func (p *Pipeline) Plot(records []models.Record) error {
	records = p.filter.ApplyFilters(records)

	opts := chart.Options{
		Title:    p.cfg.Chart.Title,
		WidthIn:  p.cfg.Chart.WidthIn,
		HeightIn: p.cfg.Chart.HeightIn,
	}
	if err := chart.Render(records, p.cfg.Chart.File, opts); err != nil {
		return fmt.Errorf("failed to plot: %w", err)
	}
	fmt.Fprintf(p.out, "chart saved to %s\n", p.cfg.Chart.File)

	p.notify(records)
	return nil
}

// preview prints the first rows of a scrape
func (p *Pipeline) preview(records []models.Record) {
	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	t.AppendHeader(table.Row{"", "Year", "Winner"})
	for i, r := range records {
		if i == previewRows {
			break
		}
		t.AppendRow(table.Row{i, string(r.Year), r.Winner})
	}
	t.Render()
}

// export copies saved records to the optional database and spreadsheet
// sinks. Failures only warn.
func (p *Pipeline) export(ctx context.Context, records []models.Record) {
	if connStr := db.ResolveConnString(p.cfg.Database.URL); connStr != "" {
		if err := saveToDB(ctx, connStr, records); err != nil {
			log.Printf("Warning: Failed to save records to database: %v\n", err)
		}
	}

	if p.cfg.Sheets.SpreadsheetURL != "" {
		if err := writeSheet(ctx, p.cfg, records); err != nil {
			log.Printf("Warning: Failed to write to Google Sheets: %v\n", err)
		}
	}
}

func saveToDB(ctx context.Context, url string, records []models.Record) error {
	database, err := db.NewDB(ctx, url)
	if err != nil {
		return err
	}
	defer database.Close()

	n, err := database.SaveRecords(ctx, records)
	if err != nil {
		return err
	}
	log.Printf("Saved %d records to database\n", n)
	return nil
}

func writeSheet(ctx context.Context, cfg *config.Config, records []models.Record) error {
	spreadsheetID := sheets.ExtractSpreadsheetID(cfg.Sheets.SpreadsheetURL)
	if spreadsheetID == "" {
		return fmt.Errorf("could not extract spreadsheet ID from URL: %s", cfg.Sheets.SpreadsheetURL)
	}

	writer, err := sheets.NewWriter(ctx, spreadsheetID, cfg.Sheets.Credentials)
	if err != nil {
		return err
	}

	sheetName := fmt.Sprintf("Winners_%s", time.Now().Format("20060102_150405"))
	_, err = writer.CreateSheetAndWriteRecords(ctx, sheetName, records, cfg.Source.URL)
	return err
}

// notify sends the chart to Telegram when a bot is configured
func (p *Pipeline) notify(records []models.Record) {
	if p.cfg.Telegram.Token == "" || p.cfg.Telegram.ChatID == 0 {
		return
	}

	n, err := notify.NewNotifier(p.cfg.Telegram.Token, p.cfg.Telegram.ChatID)
	if err != nil {
		log.Printf("Warning: Failed to initialize Telegram notifier: %v\n", err)
		return
	}
	if err := n.SendChart(p.cfg.Chart.File, records); err != nil {
		log.Printf("Warning: Failed to send chart to Telegram: %v\n", err)
	}
}
