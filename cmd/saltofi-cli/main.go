package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mastertom/saltofi/pkg/facility"
	"github.com/mastertom/saltofi/pkg/form"
	"github.com/mastertom/saltofi/pkg/orchestrator"
	"github.com/mastertom/saltofi/pkg/prompt"
)

type fieldValues map[string]any

func (f fieldValues) String() string {
	parts := make([]string, 0, len(f))
	for name, value := range f {
		parts = append(parts, fmt.Sprintf("%s=%v", name, value))
	}
	return strings.Join(parts, ",")
}

func (f fieldValues) Set(raw string) error {
	name, value, ok := strings.Cut(raw, "=")
	if !ok {
		return fmt.Errorf("expected field=value, got %q", raw)
	}
	f[strings.TrimSpace(name)] = strings.TrimSpace(value)
	return nil
}

func main() {
	obsType := flag.String("type", "GRB", "observation type")
	configPath := flag.String("config", "", "facility config file (YAML); env vars override")
	output := flag.String("output", "", "output file for the block XML (stdout if empty)")
	submit := flag.Bool("submit", false, "submit the block to the portal after rendering")
	interactive := flag.Bool("interactive", false, "collect field values interactively")

	input := fieldValues{}
	flag.Var(input, "field", "field value as name=value (repeatable)")
	flag.Parse()

	ctx := context.Background()
	pipeline := orchestrator.New()
	doc := facility.SchemaDocument()

	req := orchestrator.Request{
		Document: &doc,
		FormID:   facility.FormID(*obsType),
	}

	if *interactive {
		model, err := pipeline.FormModel(ctx, req)
		if err != nil {
			log.Fatalf("Failed to build form: %v", err)
		}
		values, err := prompt.Fill(ctx, prompt.NewSurveyDriver(), model)
		if err != nil {
			if errors.Is(err, prompt.ErrAborted) {
				os.Exit(1)
			}
			log.Fatalf("Failed to collect input: %v", err)
		}
		for name, value := range input {
			values[name] = value
		}
		req.Input = values
	} else {
		req.Input = input
	}

	result, err := pipeline.Generate(ctx, req)
	if err != nil {
		var verr *form.ValidationError
		if errors.As(err, &verr) {
			for field, messages := range verr.Fields() {
				for _, msg := range messages {
					fmt.Fprintf(os.Stderr, "%s: %s\n", field, msg)
				}
			}
			os.Exit(1)
		}
		log.Fatalf("Failed to generate block: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, result.XML, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Block written to %s\n", *output)
	} else {
		fmt.Println(string(result.XML))
	}

	if !*submit {
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	fac, err := facility.New(cfg, facility.WithOrchestrator(pipeline))
	if err != nil {
		log.Fatalf("Failed to configure facility: %v", err)
	}

	payload := result.Payload()
	if payload.ProposalCode == "" {
		payload.ProposalCode = cfg.ProposalCode
	}
	codes, err := fac.SubmitPayload(ctx, payload)
	if err != nil {
		log.Fatalf("Failed to submit block: %v", err)
	}
	fmt.Printf("Submitted block %s\n", strings.Join(codes, ", "))
}

func loadConfig(path string) (facility.Config, error) {
	if path != "" {
		return facility.LoadConfig(path)
	}
	return facility.ConfigFromEnv()
}
