package content

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// Icon is the closed set of chapter icons a content file may reference.
type Icon int

const (
	IconUnknown Icon = iota
	IconBookOpen
	IconMic
	IconVolume
	IconScroll
	IconDroplets
	IconMoon
	IconSun
	IconStar
	IconHeart
	IconHand
	IconCompass
	IconLayers
	IconSparkles
)

var iconNames = map[Icon]string{
	IconBookOpen: "book-open",
	IconMic:      "mic",
	IconVolume:   "volume",
	IconScroll:   "scroll",
	IconDroplets: "droplets",
	IconMoon:     "moon",
	IconSun:      "sun",
	IconStar:     "star",
	IconHeart:    "heart",
	IconHand:     "hand",
	IconCompass:  "compass",
	IconLayers:   "layers",
	IconSparkles: "sparkles",
}

var iconAliases = map[string]Icon{
	"book":     IconBookOpen,
	"bookopen": IconBookOpen,
	"volume2":  IconVolume,
	"volume-2": IconVolume,
	"droplet":  IconDroplets,
}

// ParseIcon maps a content-file icon key to an Icon. Keys are matched case
// insensitively; unknown keys yield IconUnknown and false.
func ParseIcon(key string) (Icon, bool) {
	normalized := strings.ToLower(strings.TrimSpace(key))
	if normalized == "" {
		return IconUnknown, false
	}
	for icon, name := range iconNames {
		if name == normalized {
			return icon, true
		}
	}
	if icon, ok := iconAliases[normalized]; ok {
		return icon, true
	}
	return IconUnknown, false
}

func (i Icon) String() string {
	if name, ok := iconNames[i]; ok {
		return name
	}
	return "unknown"
}

func (i Icon) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

func (i *Icon) UnmarshalJSON(data []byte) error {
	var key string
	if err := json.Unmarshal(data, &key); err != nil {
		return err
	}
	*i, _ = ParseIcon(key)
	return nil
}

func (i *Icon) UnmarshalYAML(node *yaml.Node) error {
	var key string
	if err := node.Decode(&key); err != nil {
		return err
	}
	*i, _ = ParseIcon(key)
	return nil
}
