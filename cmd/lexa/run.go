package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lexalang/lexa-go/pkg/input"
	"github.com/lexalang/lexa-go/pkg/output"
	"github.com/lexalang/lexa-go/pkg/pipeline"
	"github.com/lexalang/lexa-go/pkg/presenter"
	"github.com/lexalang/lexa-go/pkg/skills"
	nlptypes "github.com/lexalang/lexa-go/pkg/types/nlp"
)

// stepConfig is one pipeline step as written in the config file under
// pipelines.<name>.steps.
type stepConfig struct {
	Skill  string         `mapstructure:"skill"`
	Params map[string]any `mapstructure:"params"`
}

type pipelineConfig struct {
	Steps []stepConfig `mapstructure:"steps"`
}

var runCmd = &cobra.Command{
	Use:   "run [file...]",
	Short: "Run a skill pipeline over files or stdin",
	Long: `Run a skill pipeline over the given files, or over stdin when no file is
given. Steps come from --steps or from a named pipeline in the config file:

    pipelines:
      triage:
        steps:
          - skill: keywords
          - skill: summarize
            params:
              max_length: 50

    lexa run --pipeline triage notes.txt`,
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().StringSlice("steps", nil, "Comma-separated skill names, e.g. keywords,summarize")
	runCmd.Flags().String("pipeline", "", "Name of a pipeline defined in the config file")
	runCmd.Flags().Bool("async", false, "Submit as a processing job and poll for the result")
	runCmd.Flags().Int("workers", 0, "Concurrent requests when running multiple files")
	runCmd.Flags().Duration("timeout", 5*time.Minute, "Overall timeout")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	steps, err := resolveSteps(cmd)
	if err != nil {
		return err
	}
	p, err := pipeline.New(steps...)
	if err != nil {
		return err
	}
	inputs, err := collectInputs(args)
	if err != nil {
		return err
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()
	tr := newTransport()

	async, _ := cmd.Flags().GetBool("async")
	switch {
	case async:
		if len(inputs) != 1 {
			return errors.New("--async runs a single input")
		}
		job, err := p.Submit(ctx, tr, inputs[0])
		if err != nil {
			return err
		}
		presenter.Info(fmt.Sprintf("submitted task %s", job.TaskID()))
		out, err := job.Await(ctx, 2*time.Second)
		if err != nil {
			return err
		}
		render(out)
	case len(inputs) == 1:
		out, err := p.Run(ctx, tr, inputs[0])
		if err != nil {
			return err
		}
		render(out)
	default:
		workers, _ := cmd.Flags().GetInt("workers")
		results, err := p.RunBatch(ctx, tr, inputs, pipeline.BatchOptions{
			Workers: workers,
			OnProgress: func(done, total int) {
				presenter.Info(fmt.Sprintf("processed %d/%d", done, total))
			},
		})
		if err != nil {
			return err
		}
		failed := 0
		for i, result := range results {
			presenter.Separator()
			presenter.Section(args[i])
			if result.Err != nil {
				presenter.Error(result.Err, args[i])
				failed++
				continue
			}
			render(result.Output)
		}
		if failed > 0 {
			return errors.Errorf("%d of %d inputs failed", failed, len(results))
		}
	}
	return nil
}

// resolveSteps builds the skill list from --pipeline (config file) or --steps.
func resolveSteps(cmd *cobra.Command) ([]nlptypes.Skill, error) {
	name, _ := cmd.Flags().GetString("pipeline")
	names, _ := cmd.Flags().GetStringSlice("steps")
	switch {
	case name != "" && len(names) > 0:
		return nil, errors.New("--pipeline and --steps are mutually exclusive")
	case name != "":
		return configuredSteps(name)
	case len(names) > 0:
		steps := make([]nlptypes.Skill, 0, len(names))
		for _, n := range names {
			skill, err := skills.FromName(strings.TrimSpace(n), nil)
			if err != nil {
				return nil, err
			}
			steps = append(steps, skill)
		}
		return steps, nil
	default:
		return nil, errors.New("choose skills with --steps or --pipeline")
	}
}

func configuredSteps(name string) ([]nlptypes.Skill, error) {
	var pipelines map[string]pipelineConfig
	if err := mapstructure.Decode(viper.Get("pipelines"), &pipelines); err != nil {
		return nil, errors.Wrap(err, "reading pipelines from config")
	}
	cfg, ok := pipelines[name]
	if !ok {
		return nil, errors.Errorf("pipeline %q is not defined in the config file", name)
	}
	steps := make([]nlptypes.Skill, 0, len(cfg.Steps))
	for _, step := range cfg.Steps {
		skill, err := skills.FromName(step.Skill, step.Params)
		if err != nil {
			return nil, err
		}
		steps = append(steps, skill)
	}
	return steps, nil
}

// collectInputs loads each file argument, or stdin when there are none.
func collectInputs(args []string) ([]nlptypes.Input, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, errors.Wrap(err, "reading stdin")
		}
		return []nlptypes.Input{input.NewDocument(string(data))}, nil
	}
	inputs := make([]nlptypes.Input, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", path)
		}
		in, err := input.NewFile(path, data)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// render prints a result tree from the root down: each node's labels, then
// each generated text and its own results.
func render(out *output.Output) {
	for node := out; node != nil; {
		for _, name := range node.SkillNames() {
			labels, err := node.Labels(name)
			if err != nil {
				continue
			}
			presenter.Labels(name, labels)
		}
		children := node.Children()
		node = nil
		for name, child := range children {
			presenter.Section(name)
			presenter.Info(child.Text())
			node = child
		}
	}
}
