package render

import (
	"io"

	"github.com/fogleman/gg"
	"github.com/jsphweid/grooveset/constants"
	"github.com/jsphweid/grooveset/model"
	"github.com/jsphweid/grooveset/util"
	"github.com/pkg/errors"
)

// Image draws every column of m as a scale x scale block per pitch, pitch
// 127 on top. Louder notes are darker.
func Image(m model.VelocityMatrix, scale int) *gg.Context {
	if scale < 1 {
		scale = 1
	}
	s := float64(scale)
	dc := gg.NewContext(m.Width()*scale, constants.NumPitches*scale)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	for pitch, row := range m {
		y := float64(constants.NumPitches-1-pitch) * s
		for col, v := range row {
			if v == 0 {
				continue
			}
			shade := 1 - float64(v)/127
			dc.SetRGB(shade*0.8, shade*0.8, shade*0.8+0.2)
			dc.DrawRectangle(float64(col)*s, y, s, s)
			dc.Fill()
		}
	}
	return dc
}

func WritePNG(w io.Writer, m model.VelocityMatrix, scale int) error {
	if m.Width() == 0 {
		return errors.Wrap(model.ErrInvalidInput, "can't draw an empty piano roll")
	}
	return Image(m, scale).EncodePNG(w)
}

func SavePNG(path string, m model.VelocityMatrix, scale int) error {
	if m.Width() == 0 {
		return errors.Wrap(model.ErrInvalidInput, "can't draw an empty piano roll")
	}
	if err := util.EnsureParentDir(path); err != nil {
		return err
	}
	if err := Image(m, scale).SavePNG(path); err != nil {
		return errors.Wrapf(err, "Could not save %v", path)
	}
	return nil
}
