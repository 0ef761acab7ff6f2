package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dgallion1/pagetoc/internal/page"
	"github.com/spf13/cobra"
)

var (
	buildOut  string
	buildJobs int
)

var buildCmd = &cobra.Command{
	Use:   "build DIR",
	Short: "Render every supported file under DIR into an output directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if buildOut == "" {
			return fmt.Errorf("--output is required")
		}
		res, err := buildSite(cmd.Context(), args[0], buildOut, buildJobs, pageOptions(false), newLogger(false))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d pages written, %d with toc, %d failed\n", res.Written, res.WithTOC, len(res.Failed))
		if len(res.Failed) > 0 {
			return fmt.Errorf("%d files failed", len(res.Failed))
		}
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildOut, "output", "o", "", "output directory")
	buildCmd.Flags().IntVarP(&buildJobs, "jobs", "j", 4, "files rendered concurrently")
	rootCmd.AddCommand(buildCmd)
}

type buildResult struct {
	Written int
	WithTOC int
	Failed  []string
}

// sourceFile is a supported file found under the input directory.
type sourceFile struct {
	AbsPath string
	RelPath string // slash-separated, relative to the input root
}

// scanSources lists supported files under root. Hidden directories and
// skipDir (the output directory, when it lies inside root) are not entered.
func scanSources(ctx context.Context, root, skipDir string) ([]sourceFile, error) {
	var skipAbs string
	if skipDir != "" {
		abs, err := filepath.Abs(skipDir)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", skipDir, err)
		}
		skipAbs = abs
	}

	var files []sourceFile
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access path %s: %w", path, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			// Skip hidden directories (.git, .jekyll-cache, ...).
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if skipAbs != "" && path != root {
				if abs, err := filepath.Abs(path); err == nil && abs == skipAbs {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if !page.IsSupported(path) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to compute relative path for %s: %w", path, err)
		}
		files = append(files, sourceFile{AbsPath: path, RelPath: filepath.ToSlash(rel)})
		return nil
	})
	return files, err
}

// outputPath maps a source to OUT/<rel>.html.
func outputPath(outDir, rel string) string {
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ".html"
	return filepath.Join(outDir, filepath.FromSlash(rel))
}

// buildSite renders all sources with at most jobs files in flight.
func buildSite(ctx context.Context, inDir, outDir string, jobs int, opts page.Options, log *slog.Logger) (buildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if jobs <= 0 {
		jobs = 1
	}

	files, err := scanSources(ctx, inDir, outDir)
	if err != nil {
		return buildResult{}, err
	}
	log.Info("building", "input", inDir, "output", outDir, "files", len(files))

	var res buildResult
	files = dropCollisions(files, outDir, &res, log)

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	sem := make(chan struct{}, jobs)

	for _, f := range files {
		sem <- struct{}{}
		wg.Add(1)
		go func(f sourceFile) {
			defer wg.Done()
			defer func() { <-sem }()

			rendered, err := buildOne(f, outDir, opts)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Error("build failed", "file", f.RelPath, "error", err)
				res.Failed = append(res.Failed, f.RelPath)
				return
			}
			res.Written++
			if rendered {
				res.WithTOC++
			}
		}(f)
	}
	wg.Wait()

	return res, nil
}

// dropCollisions keeps the first source for each output path, in walk order,
// and records the rest as failed.
func dropCollisions(files []sourceFile, outDir string, res *buildResult, log *slog.Logger) []sourceFile {
	owner := make(map[string]string, len(files))
	kept := files[:0]
	for _, f := range files {
		dst := outputPath(outDir, f.RelPath)
		if first, ok := owner[dst]; ok {
			log.Error("build failed", "file", f.RelPath, "error", fmt.Errorf("output %s already produced by %s", dst, first))
			res.Failed = append(res.Failed, f.RelPath)
			continue
		}
		owner[dst] = f.RelPath
		kept = append(kept, f)
	}
	return kept
}

func buildOne(f sourceFile, outDir string, opts page.Options) (bool, error) {
	data, err := os.ReadFile(f.AbsPath)
	if err != nil {
		return false, err
	}
	out, err := page.Render(f.RelPath, data, opts)
	if err != nil {
		return false, err
	}
	dst := outputPath(outDir, f.RelPath)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return false, fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(dst, out.HTML, 0o644); err != nil {
		return false, err
	}
	return out.Result.Rendered, nil
}
