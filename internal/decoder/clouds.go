package decoder

import (
	"regexp"

	"github.com/couchcryptid/taf-decoder/internal/domain"
)

const maxCloudLayers = 4

var (
	noCloudRe    = regexp.MustCompile(`^(NSC|NCD|CLR|SKC) `)
	cloudLayerRe = regexp.MustCompile(`^(VV|FEW|SCT|BKN|OVC|///)([0-9]{3}|///)(CB|TCU|///)? `)
)

// cloudsFragment decodes a clear-sky code or up to four cloud layers.
// Vertical visibility (VV) is treated as a layer.
type cloudsFragment struct{}

func (cloudsFragment) Component() domain.Component { return domain.ComponentClouds }
func (cloudsFragment) Pattern() *regexp.Regexp     { return cloudLayerRe }

func (cloudsFragment) Parse(remaining string, withCavok bool) (Result, error) {
	if m, rest := consume(noCloudRe, remaining); m != nil {
		return Result{Fields: Fields{Clouds: domain.CloudLayers{}}, Remaining: rest}, nil
	}

	layers := domain.CloudLayers{}
	rest := remaining
	for range maxCloudLayers {
		m, next := consume(cloudLayerRe, rest)
		if m == nil {
			break
		}
		rest = next
		layers = append(layers, parseCloudLayer(m[1], m[2], m[3]))
	}

	if len(layers) == 0 && !withCavok {
		return Result{}, shapeError(domain.ComponentClouds, remaining, "Bad format for clouds information")
	}
	return Result{Fields: Fields{Clouds: layers}, Remaining: rest}, nil
}

func parseCloudLayer(amount, height, kind string) domain.CloudLayer {
	layer := domain.CloudLayer{}
	switch amount {
	case "FEW":
		layer.Amount = domain.CloudAmountFEW
	case "SCT":
		layer.Amount = domain.CloudAmountSCT
	case "BKN":
		layer.Amount = domain.CloudAmountBKN
	case "OVC":
		layer.Amount = domain.CloudAmountOVC
	case "VV":
		layer.Amount = domain.CloudAmountVV
	}

	if height != "///" {
		// Heights are reported in hundreds of feet.
		layer.BaseHeight = domain.NewValue(float64(atoi(height)*100), domain.UnitFeet)
	}

	switch kind {
	case "CB":
		layer.Type = domain.CloudTypeCB
	case "TCU":
		layer.Type = domain.CloudTypeTCU
	case "///":
		layer.Type = domain.CloudTypeCannotMeasure
	}
	return layer
}
