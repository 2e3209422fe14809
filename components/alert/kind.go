package alert

type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

var Kinds = []Kind{KindSuccess, KindInfo, KindWarning, KindError}

func (k Kind) Valid() bool {
	switch k {
	case KindSuccess, KindInfo, KindWarning, KindError:
		return true
	default:
		return false
	}
}

// Classification is the visual state computed from Props before rendering.
type Classification struct {
	Kind           Kind
	Closable       bool
	ShowIcon       bool
	Banner         bool
	HasDescription bool
	// Glyph is empty when the kind has no icon.
	Glyph Glyph
}

// Resolve computes the classification for props. It never fails; unknown
// kinds simply resolve to no glyph.
func Resolve(props Props) Classification {
	kind := props.Type
	if kind == "" {
		if props.Banner {
			kind = KindWarning
		} else {
			kind = KindInfo
		}
	}

	closable := props.Closable
	if props.CloseText != nil {
		closable = true
	}

	// banner mode shows the icon unless told otherwise
	showIcon := false
	if props.ShowIcon != nil {
		showIcon = *props.ShowIcon
	} else if props.Banner {
		showIcon = true
	}

	hasDescription := props.Description != nil

	glyphs := filledGlyphs
	if hasDescription {
		glyphs = outlinedGlyphs
	}

	return Classification{
		Kind:           kind,
		Closable:       closable,
		ShowIcon:       showIcon,
		Banner:         props.Banner,
		HasDescription: hasDescription,
		Glyph:          glyphs[kind],
	}
}
