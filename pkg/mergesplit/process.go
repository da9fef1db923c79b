package mergesplit

import (
	"context"

	"github.com/ukaji3/mergesplit-go/pkg/mergesplit/engine"
	"github.com/ukaji3/mergesplit-go/pkg/mergesplit/models"
	"github.com/ukaji3/mergesplit-go/pkg/mergesplit/parser"
	"github.com/ukaji3/mergesplit-go/pkg/mergesplit/writer"
)

// ConfigSource resolves the configuration of a process type.
// *config.Resolver satisfies it.
type ConfigSource interface {
	Get(t models.ProcessType) (models.ProcessConfig, error)
}

// ProcessType resolves the configuration for t from configs and runs Process.
func ProcessType(ctx context.Context, configs ConfigSource, path string, t models.ProcessType, opts Options) (*models.ProcessResult, error) {
	cfg, err := configs.Get(t)
	if err != nil {
		tr := newTranscript(opts.logger())
		return failed(tr, NewProcessError(KindConfig, path, err))
	}
	return Process(ctx, path, cfg, opts)
}

// Process transforms the workbook at path into a new workbook with the merged
// weight and box cells of cfg split per row. It blocks until done. The
// returned result is never nil; on failure it carries the partial transcript
// and the error is a *ProcessError.
//
// The context is checked between stages only: once the sheet is being
// redistributed or written, the stage runs to completion.
func Process(ctx context.Context, path string, cfg models.ProcessConfig, opts Options) (*models.ProcessResult, error) {
	tr := newTranscript(opts.logger())
	tr.infof("start processing file: %s", path)
	tr.infof("process type: %s (weight column %d, quantity column %d, box column %d)",
		cfg.ProcessType, cfg.WeightColumn, cfg.QuantityColumn(), cfg.BoxColumn)

	if err := ctx.Err(); err != nil {
		return failed(tr, NewProcessError(KindCanceled, path, err))
	}

	f, sheetName, err := parser.OpenWorkbook(path)
	if err != nil {
		return failed(tr, NewProcessError(KindRead, path, err))
	}
	defer f.Close()
	tr.infof("opened workbook, processing sheet %q", sheetName)

	markup, err := parser.ExtractMarkup(path, sheetName)
	if err != nil {
		return failed(tr, NewProcessError(KindMergeParse, path, err))
	}
	regions := markup.Merges
	tr.infof("found %d merged regions", len(regions))

	sheet, err := parser.ReadSheet(f, sheetName, markup)
	if err != nil {
		return failed(tr, NewProcessError(KindRead, path, err))
	}
	tr.infof("read sheet: %d rows, %d columns", sheet.MaxRow, sheet.MaxCol)

	plan := parser.ClassifyMerges(regions, cfg.WeightColumn, cfg.BoxColumn)
	tr.infof("weight column merges: %d, box column merges: %d, other merges: %d",
		len(plan.Weight), len(plan.Box), len(plan.Other))
	if cfg.CopyImages {
		tr.infof("image copying is not supported; images are skipped")
	}

	if err := ctx.Err(); err != nil {
		return failed(tr, NewProcessError(KindCanceled, path, err))
	}

	out, warnings := engine.Redistribute(sheet, plan, cfg, engine.Options{FillMerged: opts.FillMerged})
	for _, w := range warnings {
		tr.warn(w)
	}
	if n := engine.DropImageFormulas(out); n > 0 {
		tr.infof("skipped %d image formulas (DISPIMG); cells left empty", n)
	}

	keep := append([]models.MergeRegion(nil), plan.Unsupported...)
	if !opts.FillMerged {
		keep = append(keep, plan.Other...)
	}
	if opts.StopAtBlankKey {
		last := engine.TableEnd(out, keep)
		if last < out.MaxRow {
			tr.infof("row %d has a blank first column; table ends at row %d", last+1, last)
			out.Truncate(last)
			keep = engine.ClipRegions(keep, last)
		}
	}
	tr.infof("processed %d rows", out.MaxRow)

	outPath := opts.OutputPath
	if outPath == "" {
		if outPath, err = writer.OutputPath(path); err != nil {
			return failed(tr, NewProcessError(KindWrite, path, err))
		}
	}
	if err := writer.CheckTarget(path, outPath); err != nil {
		return failed(tr, NewProcessError(KindWrite, outPath, err))
	}
	tr.infof("output file: %s", outPath)

	if err := ctx.Err(); err != nil {
		return failed(tr, NewProcessError(KindCanceled, path, err))
	}

	if err := writer.Write(outPath, out, f, keep); err != nil {
		return failed(tr, NewProcessError(KindWrite, outPath, err))
	}
	tr.infof("wrote processed workbook")

	return &models.ProcessResult{
		Success:    true,
		OutputPath: outPath,
		Message:    "processing complete",
		Logs:       tr.lines,
		Warnings:   tr.warnings,
	}, nil
}

func failed(tr *transcript, err *ProcessError) (*models.ProcessResult, error) {
	tr.fail(err)
	return &models.ProcessResult{
		Success:  false,
		Message:  err.Error(),
		Logs:     tr.lines,
		Warnings: tr.warnings,
	}, err
}
