package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/callcoach/callcoach/pkg/model"
	"github.com/callcoach/callcoach/pkg/usecase/analyze"
	"github.com/callcoach/callcoach/pkg/usecase/report"
	"github.com/callcoach/callcoach/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func analyzeCommand() *cli.Command {
	var (
		cfg            config
		callIDs        []string
		transcriptFile string
		pitchPath      string
		guidePath      string
		profilePath    string
		outputDir      string
		outputPath     string
		salesRep       string
		customer       string
		duration       string
	)

	flags := []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "call",
			Aliases:     []string{"c"},
			Usage:       "Remote call ID to analyze (repeatable)",
			Destination: &callIDs,
		},
		&cli.StringFlag{
			Name:        "transcript-file",
			Aliases:     []string{"t"},
			Usage:       "Path to a local transcript file (alternative to --call)",
			Destination: &transcriptFile,
		},
		&cli.StringFlag{
			Name:        "pitch",
			Usage:       "Path to the ideal pitch document",
			Sources:     cli.EnvVars("CALLCOACH_PITCH"),
			Destination: &pitchPath,
		},
		&cli.StringFlag{
			Name:        "guide",
			Usage:       "Path to the coaching guide document",
			Sources:     cli.EnvVars("CALLCOACH_GUIDE"),
			Destination: &guidePath,
		},
		&cli.StringFlag{
			Name:        "profile",
			Usage:       "Path to a YAML coaching profile",
			Sources:     cli.EnvVars("CALLCOACH_PROFILE"),
			Destination: &profilePath,
		},
		&cli.StringFlag{
			Name:        "output-dir",
			Usage:       "Directory for per-call reports",
			Destination: &outputDir,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Output file for a local transcript report",
			Value:       "analysis_report.txt",
			Destination: &outputPath,
		},
		&cli.StringFlag{
			Name:        "sales-rep",
			Usage:       "Name of the sales representative",
			Destination: &salesRep,
		},
		&cli.StringFlag{
			Name:        "customer",
			Usage:       "Name of the customer",
			Destination: &customer,
		},
		&cli.StringFlag{
			Name:        "duration",
			Usage:       "Duration of the call",
			Destination: &duration,
		},
	}
	flags = append(flags, gongFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)
	flags = append(flags, loggingFlags(&cfg)...)

	return &cli.Command{
		Name:  "analyze",
		Usage: "Analyze sales call transcripts and write coaching reports",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx = cfg.setupLogger(ctx)
			logger := logging.From(ctx)

			prof, err := loadProfile(profilePath)
			if err != nil {
				return err
			}
			pitchPath = orDefault(pitchPath, prof.PitchFile)
			guidePath = orDefault(guidePath, prof.GuideFile)
			salesRep = orDefault(salesRep, prof.SalesRep)
			customer = orDefault(customer, prof.Customer)
			duration = orDefault(duration, orDefault(prof.Duration, "45 minutes"))
			outputDir = orDefault(outputDir, orDefault(prof.OutputDir, "."))

			if pitchPath == "" || guidePath == "" {
				return goerr.New("ideal pitch and coaching guide documents are required (--pitch, --guide)")
			}
			if (len(callIDs) == 0) == (transcriptFile == "") {
				return goerr.New("specify either --call or --transcript-file, not both")
			}

			ref, err := readReferenceMaterial(pitchPath, guidePath)
			if err != nil {
				return err
			}

			gemini, err := cfg.newGemini(ctx)
			if err != nil {
				return err
			}

			details := model.CallDetails{
				Date:     time.Now().Format("2006-01-02"),
				SalesRep: salesRep,
				Customer: customer,
				Duration: duration,
			}

			if transcriptFile != "" {
				uc := analyze.New(nil, gemini)
				return analyzeLocalFile(ctx, c, uc, transcriptFile, ref, details, outputPath)
			}

			gongClient, err := cfg.newGong()
			if err != nil {
				return err
			}
			uc := analyze.New(gongClient, gemini)

			// One identifier's failure never aborts the batch.
			written := 0
			for _, id := range callIDs {
				callID := model.CallID(id)
				details.CallID = callID

				result, err := analyzeWithSpinner(ctx, "Analyzing call "+id, func() (*model.AnalysisResult, error) {
					return uc.AnalyzeCall(ctx, callID, ref)
				})
				if err != nil {
					logger.Error("failed to analyze call", "call_id", callID, "error", err)
					continue
				}

				path := filepath.Join(outputDir, id+".txt")
				if err := writeReport(result, details, path); err != nil {
					logger.Error("failed to write report", "call_id", callID, "error", err)
					continue
				}

				fmt.Fprintf(c.Root().Writer, "Report saved to %s\n", path)
				written++
			}

			if written == 0 {
				return goerr.New("no call could be analyzed", goerr.V("calls", callIDs))
			}
			return nil
		},
	}
}

// readReferenceMaterial loads both reference documents as plain text.
// Either being missing or empty aborts the run before any remote call.
func readReferenceMaterial(pitchPath, guidePath string) (analyze.ReferenceMaterial, error) {
	pitch, err := readTextFile(pitchPath, "ideal pitch")
	if err != nil {
		return analyze.ReferenceMaterial{}, err
	}
	guide, err := readTextFile(guidePath, "coaching guide")
	if err != nil {
		return analyze.ReferenceMaterial{}, err
	}
	return analyze.ReferenceMaterial{IdealPitch: pitch, CoachingGuide: guide}, nil
}

func readTextFile(path, label string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read "+label+" document", goerr.V("path", path))
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", goerr.New(label+" document is empty", goerr.V("path", path))
	}
	return text, nil
}

func analyzeLocalFile(ctx context.Context, c *cli.Command, uc *analyze.UseCase, path string, ref analyze.ReferenceMaterial, details model.CallDetails, outputPath string) error {
	transcript, err := readTextFile(path, "transcript")
	if err != nil {
		return err
	}

	result, err := analyzeWithSpinner(ctx, "Analyzing transcript", func() (*model.AnalysisResult, error) {
		return uc.AnalyzeTranscript(ctx, transcript, ref)
	})
	if err != nil {
		return err
	}

	if err := writeReport(result, details, outputPath); err != nil {
		return err
	}

	fmt.Fprintf(c.Root().Writer, "Report saved to %s\n", outputPath)
	return nil
}

func analyzeWithSpinner(ctx context.Context, message string, fn func() (*model.AnalysisResult, error)) (*model.AnalysisResult, error) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	s.Start()
	defer s.Stop()

	return fn()
}

func writeReport(result *model.AnalysisResult, details model.CallDetails, path string) error {
	doc, err := report.Render(result, details)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return goerr.Wrap(err, "failed to write report file", goerr.V("path", path))
	}
	return nil
}
