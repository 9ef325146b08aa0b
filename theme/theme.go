package theme

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Border radius styles
const (
	BorderSquare  = "square"
	BorderRounded = "rounded"
	BorderPill    = "pill"
)

// Glass blur intensities
const (
	BlurNone = "none"
	BlurSM   = "sm"
	BlurMD   = "md"
	BlurLG   = "lg"
	BlurXL   = "xl"
)

// Config adalah theme override per restaurant. Semua field opsional;
// field yang kosong diisi dari default saat resolve dengan WithDefaults.
// OverlayOpacity pakai pointer supaya nilai 0 eksplisit tidak tertukar
// dengan "belum diset".
type Config struct {
	PrimaryColor    string `json:"primary_color,omitempty"`
	SecondaryColor  string `json:"secondary_color,omitempty"`
	PrimaryHover    string `json:"primary_hover,omitempty"`
	PrimaryLight    string `json:"primary_light,omitempty"`
	BackgroundColor string `json:"background_color,omitempty"`
	ForegroundColor string `json:"foreground_color,omitempty"`

	BgImageURL     string `json:"bg_image_url,omitempty"`
	OverlayOpacity *int   `json:"overlay_opacity,omitempty"` // 0-90
	GlassBlur      string `json:"glass_blur,omitempty"`
	BorderRadius   string `json:"border_radius,omitempty"`

	// Legacy
	FontFamily  string `json:"font_family,omitempty"`
	ButtonStyle string `json:"button_style,omitempty"`

	FontPairing string `json:"font_pairing,omitempty"`
}

// Value -> simpan sebagai kolom JSON
func (c Config) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan -> baca dari kolom JSON
func (c *Config) Scan(value interface{}) error {
	if value == nil {
		*c = Config{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		if len(v) == 0 {
			*c = Config{}
			return nil
		}
		return json.Unmarshal(v, c)
	case string:
		if v == "" {
			*c = Config{}
			return nil
		}
		return json.Unmarshal([]byte(v), c)
	}
	return errors.New("unsupported column type for theme config")
}

// DefaultConfig mengembalikan theme default sistem, selalu terisi penuh.
func DefaultConfig() Config {
	return Config{
		PrimaryColor:    "#6366f1",
		SecondaryColor:  "#8b5cf6",
		PrimaryHover:    "#4f46e5",
		PrimaryLight:    "#a5b4fc",
		BackgroundColor: "#0f172a",
		ForegroundColor: "#f8fafc",
		BgImageURL:      "",
		OverlayOpacity:  intp(40),
		GlassBlur:       BlurLG,
		BorderRadius:    BorderRounded,
		FontFamily:      "Inter",
		ButtonStyle:     BorderRounded,
		FontPairing:     PairingModern,
	}
}

// WithDefaults menggabungkan override parsial dengan default sistem.
// Idempotent: resolve dua kali menghasilkan record yang sama. Tidak ada
// validasi format warna atau batas angka; nilai apa pun diteruskan apa adanya.
func WithDefaults(c Config) Config {
	d := DefaultConfig()
	out := Config{
		PrimaryColor:    pick(c.PrimaryColor, d.PrimaryColor),
		SecondaryColor:  pick(c.SecondaryColor, d.SecondaryColor),
		PrimaryHover:    pick(c.PrimaryHover, d.PrimaryHover),
		PrimaryLight:    pick(c.PrimaryLight, d.PrimaryLight),
		BackgroundColor: pick(c.BackgroundColor, d.BackgroundColor),
		ForegroundColor: pick(c.ForegroundColor, d.ForegroundColor),
		BgImageURL:      pick(c.BgImageURL, d.BgImageURL),
		GlassBlur:       pick(c.GlassBlur, d.GlassBlur),
		BorderRadius:    pick(c.BorderRadius, d.BorderRadius),
		FontFamily:      pick(c.FontFamily, d.FontFamily),
		ButtonStyle:     pick(c.ButtonStyle, d.ButtonStyle),
		FontPairing:     pick(c.FontPairing, d.FontPairing),
	}
	// presence check, bukan zero check: overlay 0 eksplisit harus dipertahankan
	if c.OverlayOpacity != nil {
		out.OverlayOpacity = intp(*c.OverlayOpacity)
	} else {
		out.OverlayOpacity = intp(*d.OverlayOpacity)
	}
	return out
}

// CSSVariables menghasilkan blok CSS variable dari theme yang sudah resolved.
func CSSVariables(c Config) string {
	bgImage := "none"
	if c.BgImageURL != "" {
		bgImage = fmt.Sprintf("url(%s)", c.BgImageURL)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--primary: %s;\n", c.PrimaryColor)
	fmt.Fprintf(&b, "--primary-hover: %s;\n", c.PrimaryHover)
	fmt.Fprintf(&b, "--primary-light: %s;\n", c.PrimaryLight)
	fmt.Fprintf(&b, "--secondary: %s;\n", c.SecondaryColor)
	fmt.Fprintf(&b, "--background: %s;\n", c.BackgroundColor)
	fmt.Fprintf(&b, "--foreground: %s;\n", c.ForegroundColor)
	fmt.Fprintf(&b, "--radius: %s;\n", BorderRadiusValue(c.BorderRadius))
	fmt.Fprintf(&b, "--bg-image: %s;\n", bgImage)
	fmt.Fprintf(&b, "--overlay-opacity: %s;\n", formatOpacity(overlayFraction(c)))
	return b.String()
}

// BorderRadiusValue memetakan corner style ke nilai CSS.
func BorderRadiusValue(style string) string {
	switch style {
	case BorderSquare:
		return "0px"
	case BorderPill:
		return "9999px"
	default: // rounded
		return "1rem"
	}
}

// GlassClasses menghasilkan kombinasi class glassmorphism yang stabil
// untuk semua container kartu di UI.
func GlassClasses(c Config) string {
	blur := pick(c.GlassBlur, BlurLG)
	radius := pick(c.BorderRadius, BorderRounded)

	parts := []string{"bg-white/10"}
	if blur != BlurNone {
		parts = append(parts, "backdrop-blur-"+blur)
	}
	parts = append(parts, "border", "border-white/20", "shadow-xl")

	switch radius {
	case BorderSquare:
		parts = append(parts, "rounded-none")
	case BorderPill:
		parts = append(parts, "rounded-3xl")
	default:
		parts = append(parts, "rounded-2xl")
	}
	return strings.Join(parts, " ")
}

// Effect adalah glass effect untuk inline style.
type Effect struct {
	Background   string `json:"background"`
	BackdropBlur string `json:"backdrop_blur"`
	Border       string `json:"border"`
	Shadow       string `json:"shadow"`
}

// GlassEffect menghasilkan Effect untuk inline style.
func GlassEffect(c Config) Effect {
	blur := pick(c.GlassBlur, BlurLG)
	return Effect{
		Background:   "rgba(255, 255, 255, 0.1)",
		BackdropBlur: fmt.Sprintf("%dpx", blurPixels(blur)),
		Border:       "1px solid rgba(255, 255, 255, 0.2)",
		Shadow:       "0 25px 50px -12px rgba(0, 0, 0, 0.25)",
	}
}

func blurPixels(blur string) int {
	switch blur {
	case BlurSM:
		return 4
	case BlurMD:
		return 8
	case BlurLG:
		return 16
	case BlurXL:
		return 24
	default:
		return 0
	}
}

// BackgroundStyles menghasilkan rule background halaman. Dua cabang yang
// saling eksklusif: ada background image -> full viewport image + overlay
// hitam transparan; tidak ada -> flat background color.
func BackgroundStyles(c Config) string {
	if c.BgImageURL != "" {
		return fmt.Sprintf(`body {
  background-image: url(%s);
  background-size: cover;
  background-position: center;
  background-attachment: fixed;
}
body::before {
  content: '';
  position: fixed;
  top: 0;
  left: 0;
  right: 0;
  bottom: 0;
  background: rgba(0, 0, 0, %s);
  z-index: -1;
}
`, c.BgImageURL, formatOpacity(overlayFraction(c)))
	}
	return fmt.Sprintf("body {\n  background-color: %s;\n}\n", c.BackgroundColor)
}

func overlayFraction(c Config) float64 {
	if c.OverlayOpacity == nil {
		return float64(*DefaultConfig().OverlayOpacity) / 100
	}
	return float64(*c.OverlayOpacity) / 100
}

func formatOpacity(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func pick(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func intp(n int) *int {
	return &n
}
