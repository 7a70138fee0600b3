package types

import (
	"fmt"
	"strings"
)

// Tone is the writing register requested for the tailored documents.
type Tone string

// Supported tones. The value is the short label shown to users.
const (
	ToneImpactDriven  Tone = "Impact Driven"
	ToneResearchBased Tone = "Research Based"
	ToneCreative      Tone = "Creative"
	ToneConcise       Tone = "Concise"
)

// DefaultTone is used when the intake form leaves the tone unset.
const DefaultTone = ToneImpactDriven

var toneDescriptions = map[Tone]string{
	ToneImpactDriven:  "Impact Driven (Action-oriented, metrics-heavy)",
	ToneResearchBased: "Research Based (Detail-oriented, academic, methodology-focused)",
	ToneCreative:      "Creative (Story-focused, visionary)",
	ToneConcise:       "Concise (Direct, minimalist)",
}

// Tones returns every supported tone in display order.
func Tones() []Tone {
	return []Tone{ToneImpactDriven, ToneResearchBased, ToneCreative, ToneConcise}
}

// Description returns the long form used inside prompts.
func (t Tone) Description() string {
	if d, ok := toneDescriptions[t]; ok {
		return d
	}
	return string(t)
}

// Valid reports whether t is one of the supported tones.
func (t Tone) Valid() bool {
	_, ok := toneDescriptions[t]
	return ok
}

// ParseTone accepts the short label, the long description, or a kebab-case key
// ("impact-driven") and returns the matching Tone.
func ParseTone(s string) (Tone, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultTone, nil
	}
	for _, tone := range Tones() {
		label := string(tone)
		key := strings.ToLower(strings.ReplaceAll(label, " ", "-"))
		if strings.EqualFold(s, label) || strings.EqualFold(s, tone.Description()) || strings.EqualFold(s, key) {
			return tone, nil
		}
	}
	return "", fmt.Errorf("unknown tone %q", s)
}

// UnmarshalText lets JSON documents use any form accepted by ParseTone.
func (t *Tone) UnmarshalText(text []byte) error {
	tone, err := ParseTone(string(text))
	if err != nil {
		return err
	}
	*t = tone
	return nil
}
