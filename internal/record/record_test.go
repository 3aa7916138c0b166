package record

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ratXML = `<?xml version="1.0" encoding="UTF-8"?>
<monster name="Rat" nameDescription="a rat" race="blood" experience="5" speed="134">
	<!-- comment -->
	<health now="20" max="20"/>
	<look type="21" corpse="2813"/>
	<attacks>
		<attack name="melee" interval="2000" skill="10" attack="5"/>
	</attacks>
	<loot>
		<item id="2148" countmax="4" chance="100000"/>
	</loot>
</monster>`

func TestDecodeXML(t *testing.T) {
	root, err := DecodeXML(strings.NewReader(ratXML))
	require.NoError(t, err)

	assert.Equal(t, "monster", root.Name)
	name, ok := root.Attr("name")
	require.True(t, ok)
	assert.Equal(t, "Rat", name)

	exp, ok := root.Int("experience")
	require.True(t, ok)
	assert.Equal(t, 5, exp)

	require.Len(t, root.Children, 4)
	health := root.Child("health")
	require.NotNil(t, health)
	now, ok := health.Int("now")
	require.True(t, ok)
	assert.Equal(t, 20, now)

	attacks := root.Child("attacks").ChildrenNamed("attack")
	require.Len(t, attacks, 1)
	assert.True(t, attacks[0].Has("skill"))
}

func TestDecodeXML_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "only prolog", input: `<?xml version="1.0"?>`},
		{name: "unclosed", input: `<monster><health></monster>`},
		{name: "two roots", input: `<a/><b/>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeXML(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestDecodeYAML(t *testing.T) {
	doc := `
name: monster
attrs:
  name: Rat
  experience: 5
children:
  - name: health
    attrs: {now: 20, max: 20}
  - name: flags
    children:
      - name: flag
        attrs: {summonable: 1}
`
	root, err := DecodeYAML(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "monster", root.Name)
	exp, ok := root.Int("experience")
	require.True(t, ok)
	assert.Equal(t, 5, exp)

	flag := root.Child("flags").Child("flag")
	require.NotNil(t, flag)
	summonable, ok := flag.Bool("summonable")
	require.True(t, ok)
	assert.True(t, summonable)
}

func TestDecodeYAML_Empty(t *testing.T) {
	_, err := DecodeYAML(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestNode_Accessors(t *testing.T) {
	n := NewNode("attack", "name", "fire", "min", "-10", "max", " 20 ", "bad", "x1", "dangling")

	v, ok := n.Int("min")
	assert.True(t, ok)
	assert.Equal(t, -10, v)

	v, ok = n.Int("max")
	assert.True(t, ok, "whitespace is trimmed")
	assert.Equal(t, 20, v)

	_, ok = n.Int("bad")
	assert.False(t, ok)
	assert.True(t, n.Has("bad"))

	_, ok = n.Int("missing")
	assert.False(t, ok)
	assert.False(t, n.Has("dangling"))

	v, ok = n.FirstInt("speed", "max")
	assert.True(t, ok)
	assert.Equal(t, 20, v)

	assert.Nil(t, n.Child("nothing"))
	assert.Empty(t, n.ChildrenNamed("nothing"))
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	xmlPath := filepath.Join(dir, "rat.xml")
	require.NoError(t, os.WriteFile(xmlPath, []byte(ratXML), 0o644))

	yamlPath := filepath.Join(dir, "rat.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("name: monster\nattrs: {name: Rat}\n"), 0o644))

	fromXML, err := ReadFile(xmlPath)
	require.NoError(t, err)
	fromYAML, err := ReadFile(yamlPath)
	require.NoError(t, err)

	a, _ := fromXML.Attr("name")
	b, _ := fromYAML.Attr("name")
	assert.Equal(t, a, b)

	_, err = ReadFile(filepath.Join(dir, "missing.xml"))
	assert.Error(t, err)
}

func TestDecodeXML_Latin1(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n<monster name=\"K\xf6nig\"/>"
	root, err := DecodeXML(strings.NewReader(doc))
	require.NoError(t, err)

	name, _ := root.Attr("name")
	assert.Equal(t, "König", name)
}
