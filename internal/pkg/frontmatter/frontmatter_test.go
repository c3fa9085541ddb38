package frontmatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeMap(t *testing.T, src []byte) (map[string]any, string) {
	t.Helper()
	meta := map[string]any{}
	body, err := Unmarshal(src, &meta)
	require.NoError(t, err)
	return meta, body
}

func TestRoundTripMap(t *testing.T) {
	meta := map[string]any{
		"name":     "Carrara: \"White\" Marble",
		"tricky":   "---",
		"multi":    "line one\n---\nline three",
		"featured": true,
		"order":    3,
		"ratio":    1.5,
		"finishes": []any{"Polished", "Honed"},
		"empty":    []any{},
		"images": []any{
			map[string]any{"url": "/img/a.jpg", "alt": "A", "primary": true},
			map[string]any{"url": "/img/b.jpg", "alt": "", "primary": false},
		},
	}
	body := "# Heading\n\nSome *markdown* body.\n"

	out, err := Encode(meta, body)
	require.NoError(t, err)

	got, gotBody := decodeMap(t, out)
	assert.Equal(t, meta, got)
	assert.Equal(t, body, gotBody)
}

func TestRoundTripBodyVerbatim(t *testing.T) {
	cases := []string{
		"",
		"no trailing newline",
		"\n\nleading blank lines\n",
		"a body with --- inside a line\n",
	}
	for _, body := range cases {
		out, err := Encode(map[string]any{"title": "x"}, body)
		require.NoError(t, err)
		_, got := decodeMap(t, out)
		assert.Equal(t, body, got)
	}
}

type image struct {
	URL     string `yaml:"url"`
	Alt     string `yaml:"alt"`
	Primary bool   `yaml:"primary"`
}

type record struct {
	Name     string   `yaml:"name"`
	Active   bool     `yaml:"active"`
	Finishes []string `yaml:"finishes"`
	Images   []image  `yaml:"images"`
}

func TestEncodeLayout(t *testing.T) {
	rec := record{
		Name:   "Slate",
		Active: true,
		Images: []image{{URL: "/a.jpg", Alt: "front", Primary: true}},
	}
	out, err := Encode(rec, "body\n")
	require.NoError(t, err)

	want := strings.Join([]string{
		"---",
		`name: "Slate"`,
		"active: true",
		"finishes: []",
		"images:",
		`  - url: "/a.jpg"`,
		`    alt: "front"`,
		"    primary: true",
		"---",
		"body",
		"",
	}, "\n")
	assert.Equal(t, want, string(out))
}

func TestUnmarshalKeepsDefaults(t *testing.T) {
	src := []byte("---\nname: \"Old product\"\n---\n")
	rec := record{Active: true}
	_, err := Unmarshal(src, &rec)
	require.NoError(t, err)
	assert.Equal(t, "Old product", rec.Name)
	assert.True(t, rec.Active)
	assert.Nil(t, rec.Finishes)
}

func TestEmptyMetadata(t *testing.T) {
	out, err := Encode(map[string]any{}, "hello")
	require.NoError(t, err)
	assert.Equal(t, "---\n---\nhello", string(out))

	meta, body := decodeMap(t, out)
	assert.Empty(t, meta)
	assert.Equal(t, "hello", body)
}

func TestDecodeCRLF(t *testing.T) {
	src := []byte("---\r\nname: tile\r\n---\r\nbody\r\n")
	meta, body := decodeMap(t, src)
	assert.Equal(t, "tile", meta["name"])
	assert.Equal(t, "body\r\n", body)
}

func TestDecodeMalformed(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"no opening":     "name: x\n---\nbody",
		"no closing":     "---\nname: x\nbody",
		"only delimiter": "---",
		"bad yaml":       "---\nname: [unclosed\n---\n",
		"not a mapping":  "---\n- a\n- b\n---\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := Decode([]byte(src))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestUnmarshalTypeMismatch(t *testing.T) {
	src := []byte("---\nactive: [1, 2]\n---\n")
	var rec record
	_, err := Unmarshal(src, &rec)
	assert.ErrorIs(t, err, ErrMalformed)
}
