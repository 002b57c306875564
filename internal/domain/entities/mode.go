package entities

import (
	"errors"
	"strings"
)

// Mode is the quiz direction and answer style.
type Mode string

const (
	ModeType      Mode = "TYPE"       // Hungarian shown, English typed
	ModeChooseEN  Mode = "MC_EN"      // Hungarian shown, English chosen
	ModeChooseHU  Mode = "MC_HU"      // English shown, Hungarian chosen
	ModeRandomMix Mode = "RANDOM_MIX" // one of the above per question
)

var ErrUnknownMode = errors.New("unknown quiz mode")

// ConcreteModes lists the modes a single question can have.
var ConcreteModes = []Mode{ModeType, ModeChooseEN, ModeChooseHU}

// AllModes lists every selectable mode in display order.
var AllModes = []Mode{ModeType, ModeChooseEN, ModeChooseHU, ModeRandomMix}

var modeAliases = map[string]Mode{
	"type":          ModeType,
	"hu_to_en_type": ModeType,
	"mc_en":         ModeChooseEN,
	"hu_to_en_mc":   ModeChooseEN,
	"mc_hu":         ModeChooseHU,
	"en_to_hu_mc":   ModeChooseHU,
	"random_mix":    ModeRandomMix,
	"mix":           ModeRandomMix,
	"random":        ModeRandomMix,
}

// ParseMode parses a mode name case-insensitively. Legacy names are accepted.
func ParseMode(s string) (Mode, error) {
	m, ok := modeAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", ErrUnknownMode
	}
	return m, nil
}

// IsMultipleChoice reports whether questions of this mode carry options.
func (m Mode) IsMultipleChoice() bool {
	return m == ModeChooseEN || m == ModeChooseHU
}

// Label returns a short human-readable description of the mode.
func (m Mode) Label() string {
	switch m {
	case ModeType:
		return "magyar → írd angolul"
	case ModeChooseEN:
		return "magyar → válaszd az angolt"
	case ModeChooseHU:
		return "angol → válaszd a magyart"
	case ModeRandomMix:
		return "vegyes"
	default:
		return string(m)
	}
}
