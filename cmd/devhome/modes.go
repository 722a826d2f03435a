package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"devhome/internal/config"
	"devhome/internal/editor"
	"devhome/internal/export"
	"devhome/internal/ingest"
	"devhome/internal/model"
	"devhome/internal/progress"
	"devhome/internal/store"
	"devhome/internal/table"
	"devhome/internal/util/logx"
	"devhome/internal/wizard"
)

var defectColumns = []string{"severity", "tool", "category", "id", "file", "line", "column", "cwe", "message"}

// runConfigure prompts every option of one project and saves the answers.
func runConfigure(ctx context.Context, cfg *config.Config, reg *editor.Registry) error {
	s, err := store.Load(cfg.Workspace)
	if err != nil {
		return err
	}
	p, err := s.Project(cfg.Configure)
	if err != nil {
		return err
	}
	editors := reg.ResolveAll(s.Schema(), s.Config(p.ID), &p)
	values, err := wizard.Run(ctx, wizard.NewSurveyDriver(), editors)
	if err != nil {
		return err
	}
	if err := s.SaveConfig(p.ID, values); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "saved %d options for %s\n", len(values), p.Name)
	return nil
}

func projectID(s *store.Store, cfg *config.Config) (string, error) {
	if cfg.Project != "" {
		return cfg.Project, nil
	}
	projects := s.Projects()
	if len(projects) == 0 {
		return "", fmt.Errorf("workspace %s has no projects", s.Path())
	}
	return projects[0].ID, nil
}

// runExport writes the defects of the selected project.
func runExport(cfg *config.Config) error {
	s, err := store.Load(cfg.Workspace)
	if err != nil {
		return err
	}
	id, err := projectID(s, cfg)
	if err != nil {
		return err
	}
	insp, err := s.Inspection(id)
	if err != nil {
		return err
	}
	records := make([]map[string]any, len(insp.Defects))
	for i, d := range insp.Defects {
		records[i] = d.Record()
	}
	rows := table.IndexRows(records)
	rows = table.SortRows(rows, []table.SortSpec{{Column: "file"}, {Column: "line"}}, map[string]table.Kind{"line": table.KindNumber})
	if cfg.ExportFormat == "json" {
		err = export.ToNDJSON(cfg.ExportOut, rows)
	} else {
		err = export.ToCSV(cfg.ExportOut, defectColumns, rows)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "exported %d defects of %s to %s\n", len(rows), id, cfg.ExportOut)
	return nil
}

// runHeadless logs the progress label to stderr until the inspection ends.
func runHeadless(ctx context.Context, cfg *config.Config) error {
	logx.SetStderr(true)
	var initial []progress.Step
	if s, err := store.Load(cfg.Workspace); err == nil {
		if id, err := projectID(s, cfg); err == nil {
			if insp, err := s.Inspection(id); err == nil {
				initial = planSteps(insp.Steps)
			}
		}
	} else if cfg.ProgressFile == "" && !cfg.UseStdin {
		return err
	}

	opt := ingest.Options{Source: ingest.SourceDemo, Demo: initial}
	switch {
	case cfg.UseStdin:
		opt = ingest.Options{Source: ingest.SourceStdin}
	case cfg.ProgressFile != "":
		opt = ingest.Options{Source: ingest.SourceFile, Path: cfg.ProgressFile, Follow: cfg.Follow}
	}
	ictx, cancel := context.WithCancel(ctx)
	defer cancel()
	events, errs := ingest.Read(ictx, opt)

	var mu sync.Mutex
	runs := ingest.Runs{Steps: initial}
	first := make(chan struct{})
	var once sync.Once
	go func() {
		for ev := range events {
			mu.Lock()
			if runs.Apply(ev) {
				logx.Infof("progress: new inspection run %s", runs.ID)
			}
			mu.Unlock()
			once.Do(func() { close(first) })
		}
		once.Do(func() { close(first) })
	}()
	go func() {
		for err := range errs {
			logx.Warnf("ingest: %v", err)
		}
	}()
	if len(initial) == 0 {
		select {
		case <-first:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	poller := &progress.Poller{Interval: cfg.Tick(), Estimator: progress.NewEstimator("Inspecting")}
	last := ""
	return poller.Run(ctx, func() []progress.Step {
		mu.Lock()
		defer mu.Unlock()
		return append([]progress.Step(nil), runs.Steps...)
	}, func(s progress.Snapshot) {
		if s.Label == last {
			return
		}
		last = s.Label
		if s.Phase == progress.NoStepRunning {
			logx.Infof("progress: no inspection running")
			return
		}
		logx.Infof("progress: %s", s.Label)
	})
}

func planSteps(plan []model.StepPlan) []progress.Step {
	out := make([]progress.Step, len(plan))
	for i, p := range plan {
		out[i] = progress.Step{Name: p.Name, Done: p.Done, ExpectedDuration: p.Expected}
	}
	return out
}
