package calculator

import (
	"io"

	"github.com/bcdannyboy/optcalc/models"
	"github.com/bcdannyboy/optcalc/valuation"
	mpb "github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"
)

func progressBar(w io.Writer) valuation.ProgressFunc {
	return func(total int) (models.Progress, func()) {
		p := mpb.New(mpb.WithOutput(w), mpb.WithWidth(64))
		bar := p.AddBar(int64(total),
			mpb.PrependDecorators(
				decor.Name("Simulating"),
				decor.Percentage(decor.WCSyncSpace),
			),
			mpb.AppendDecorators(
				decor.CountersNoUnit("(%d / %d)", decor.WCSyncSpace),
			),
		)
		return bar, func() {
			// an unfinished bar would keep Wait blocked
			if !bar.Completed() {
				bar.Abort(false)
			}
			p.Wait()
		}
	}
}
