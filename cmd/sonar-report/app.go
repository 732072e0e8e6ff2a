// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/sirseerhq/sonar-report/internal/config"
	"github.com/sirseerhq/sonar-report/internal/output"
	"github.com/sirseerhq/sonar-report/internal/report"
	"github.com/sirseerhq/sonar-report/internal/sonar"
)

// app carries the global options and streams to every command.
type app struct {
	opts   globalOptions
	stdout io.Writer
	stderr io.Writer
}

// buildFunc builds one report for the resolved project key.
type buildFunc func(ctx context.Context, b *report.Builder, projectKey string) (report.Report, error)

func (a *app) console() *output.Console {
	return output.NewConsole(a.stderr, a.opts.verbose, false)
}

// runReport loads the configuration, builds a report for project and
// writes it. Nothing is written when building fails.
func (a *app) runReport(ctx context.Context, project string, build buildFunc) error {
	console := a.console()

	cfg, err := config.Load(a.opts.configPath)
	if err != nil {
		return err
	}
	console.Debugf("Connecting to %s", cfg.Server.URL)

	client := sonar.NewHTTPClient(cfg.Server.URL, cfg.Server.Token, cfg.Server.Timeout, sonar.WithLogger(console))
	projectKey := cfg.ResolveProject(project)
	if projectKey != project {
		console.Debugf("Resolved alias %q to project %s", project, projectKey)
	}

	rep, err := build(ctx, report.NewBuilder(client), projectKey)
	if err != nil {
		return err
	}

	return a.writeReport(rep, console)
}

// writeReport writes rep to the --output file, or stdout.
func (a *app) writeReport(rep report.Report, console *output.Console) error {
	var writer output.OutputWriter
	if a.opts.outputPath == "" {
		writer = output.NewWriter(a.stdout, a.opts.pretty)
	} else {
		fileWriter, err := output.NewFileWriter(a.opts.outputPath, a.opts.pretty)
		if err != nil {
			return err
		}
		writer = fileWriter
	}

	if err := writer.Write(rep); err != nil {
		writer.Close()
		return err
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	if a.opts.outputPath != "" {
		console.Infof("Report written to '%s'", a.opts.outputPath)
	}
	return nil
}
