package creature

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/bestiary/internal/game/ability"
	"github.com/udisondev/bestiary/internal/game/loot"
	"github.com/udisondev/bestiary/internal/model"
	"github.com/udisondev/bestiary/internal/record"
)

func newTestRegistry() *Registry {
	return NewRegistry(ability.NewCompiler(), loot.NewBuilder(testCatalog()))
}

func withHealth(rec *record.Node, now, healthMax string) *record.Node {
	for _, c := range rec.Children {
		if c.Name == "health" {
			c.Set("now", now).Set("max", healthMax)
		}
	}
	return rec
}

func TestRegistry_Load(t *testing.T) {
	r := newTestRegistry()

	src := NewStaticSource().
		Add("Rat", ratRecord("Rat")).
		Add("Cave Rat", ratRecord("Cave Rat")).
		Add("Broken", record.NewNode("monster", "name", "Broken")).
		Add("Unreadable", nil)

	report, err := r.Load(src)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Loaded)
	assert.Equal(t, 2, report.Added)
	require.Len(t, report.Skipped, 2)

	var fe *FieldError
	assert.True(t, errors.As(report.Skipped[0].Err, &fe))
	assert.Equal(t, "Unreadable", report.Skipped[1].Name)

	assert.Equal(t, 2, r.Len())

	h, ok := r.LookupName("CAVE RAT")
	require.True(t, ok)
	assert.Equal(t, uint32(2), h.ID())
	assert.Equal(t, "Cave Rat", h.Template().Name)
	assert.Equal(t, h.ID(), h.Template().ID)

	byID, ok := r.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, "Rat", byID.Template().Name)

	_, ok = r.LookupName("broken")
	assert.False(t, ok)
	_, ok = r.Lookup(99)
	assert.False(t, ok)

	handles := r.Handles()
	require.Len(t, handles, 2)
	assert.Equal(t, uint32(1), handles[0].ID())
}

func TestRegistry_DocumentErrorAbortsBatch(t *testing.T) {
	r := newTestRegistry()

	_, err := r.Load(NewStaticSource().Add("Rat", ratRecord("Rat")))
	require.NoError(t, err)
	before := r.mustTemplate(t, "rat")

	src := NewStaticSource().
		Add("Rat", withHealth(ratRecord("Rat"), "99", "99")).
		Add("Wolf", record.NewNode("npc", "name", "Wolf"))

	_, err = r.Reload(src)
	var de *DocumentError
	require.True(t, errors.As(err, &de))

	assert.Same(t, before, r.mustTemplate(t, "rat"))
	assert.Equal(t, int32(20), r.mustTemplate(t, "rat").Health)
	_, ok := r.LookupName("wolf")
	assert.False(t, ok)
}

func TestRegistry_ReloadKeepsIDsAndHandles(t *testing.T) {
	r := newTestRegistry()

	_, err := r.Load(NewStaticSource().Add("Rat", ratRecord("Rat")).Add("Wolf", ratRecord("Wolf")))
	require.NoError(t, err)

	rat, _ := r.LookupName("rat")
	wolf, _ := r.LookupName("wolf")
	oldWolf := wolf.Template()

	src := NewStaticSource().
		Add("Bear", ratRecord("Bear")).
		Add("Wolf", withHealth(ratRecord("Wolf"), "80", "90")).
		Add("Rat", record.NewNode("monster", "name", "Rat"))

	report, err := r.Reload(src)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Loaded)
	assert.Equal(t, 1, report.Added)
	assert.Len(t, report.Skipped, 1)

	// Same handle, new template.
	assert.Equal(t, uint32(2), wolf.ID())
	assert.Equal(t, int32(80), wolf.Template().Health)
	assert.Equal(t, int32(20), oldWolf.Health, "previous template is never mutated")

	// Rat failed validation; its published template stays.
	assert.Equal(t, int32(20), rat.Template().Health)

	bear, ok := r.LookupName("bear")
	require.True(t, ok)
	assert.Equal(t, uint32(3), bear.ID())
}

func TestRegistry_ReloadOneAtomic(t *testing.T) {
	r := newTestRegistry()
	src := NewStaticSource().Add("Rat", ratRecord("Rat"))

	_, err := r.Load(src)
	require.NoError(t, err)

	h, _ := r.LookupName("rat")
	before := h.Template()
	snapshot := before.Clone()

	// Malformed: health section lost.
	src.Add("Rat", record.NewNode("monster", "name", "Rat"))

	err = r.ReloadOne("Rat")
	var re *ReloadError
	require.True(t, errors.As(err, &re))
	var fe *FieldError
	assert.True(t, errors.As(err, &fe))

	assert.Same(t, before, h.Template())
	assert.Equal(t, snapshot, h.Template())

	// Wrong root is rejected the same way.
	src.Add("Rat", record.NewNode("npc", "name", "Rat"))
	require.Error(t, r.ReloadOne("rat"))
	assert.Same(t, before, h.Template())

	// A valid record is swapped in under the same id.
	src.Add("Rat", withHealth(ratRecord("Rat"), "30", "30"))
	require.NoError(t, r.ReloadOne("RAT"))
	assert.NotSame(t, before, h.Template())
	assert.Equal(t, int32(30), h.Template().Health)
	assert.Equal(t, h.ID(), h.Template().ID)
	assert.Equal(t, int32(20), before.Health)
}

func TestRegistry_ReloadOneUnknown(t *testing.T) {
	r := newTestRegistry()

	err := r.ReloadOne("rat")
	assert.ErrorIs(t, err, ErrUnknownCreature)

	_, err = r.Load(NewStaticSource().Add("Rat", ratRecord("Rat")))
	require.NoError(t, err)
	assert.ErrorIs(t, r.ReloadOne("wolf"), ErrUnknownCreature)
}

func TestRegistry_OutfitReference(t *testing.T) {
	r := newTestRegistry()

	illusionist := record.NewNode("monster", "name", "Illusionist").Add(
		record.NewNode("health", "now", "100", "max", "100"),
		record.NewNode("attacks").Add(
			record.NewNode("attack", "name", "outfit", "monster", "rat", "interval", "4000"),
			record.NewNode("attack", "name", "outfit", "monster", "dragon"),
		),
	)

	_, err := r.Load(NewStaticSource().Add("Rat", ratRecord("Rat")).Add("Illusionist", illusionist))
	require.NoError(t, err)

	h, ok := r.LookupName("illusionist")
	require.True(t, ok)
	require.Len(t, h.Template().Attacks, 2)

	copied := h.Template().Attacks[0].Payload.(*model.SynthesizedAction)
	require.NotNil(t, copied.Status)
	assert.Equal(t, uint16(21), copied.Status.Outfit.LookType)

	unknown := h.Template().Attacks[1].Payload.(*model.SynthesizedAction)
	assert.Nil(t, unknown.Status)

	outfit, ok := r.OutfitByName("RAT")
	require.True(t, ok)
	assert.Equal(t, uint16(21), outfit.LookType)
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	monsterPath := filepath.Join(dir, "monster")
	require.NoError(t, os.MkdirAll(monsterPath, 0o755))

	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(monsterPath, name), []byte(body), 0o644))
	}

	write("monsters.xml", `<?xml version="1.0" encoding="ISO-8859-1"?>
<monsters>
	<monster name="Rat" file="rat.xml"/>
	<monster name="Wolf" file="wolf.yaml"/>
	<monster name="Ghost" file="ghost.xml"/>
	<monster name="Orphan"/>
	<npc name="Sam" file="sam.xml"/>
</monsters>`)
	write("rat.xml", `<?xml version="1.0" encoding="ISO-8859-1"?>
<monster name="Rat" experience="5" speed="134">
	<health now="20" max="20"/>
	<look type="21" corpse="5964"/>
	<attacks>
		<attack name="melee" interval="2000" min="0" max="-8"/>
		<attack name="poisoncondition" min="-1" max="-2" interval="3000" chance="20">
			<attribute key="areaEffect" value="greenbubble"/>
		</attack>
	</attacks>
	<loot>
		<item id="2148" countmax="4" chance="40000"/>
		<item id="1987">
			<contents>
				<item id="2376" chance="5000"/>
			</contents>
		</item>
	</loot>
</monster>`)
	write("wolf.yaml", `name: monster
attrs:
  name: Wolf
  experience: "18"
children:
  - name: health
    attrs: {now: "25", max: "25"}
`)

	r := newTestRegistry()
	report, err := r.Load(NewDirSource(dir))
	require.NoError(t, err)

	assert.Equal(t, 2, report.Loaded)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "Ghost", report.Skipped[0].Name)

	rat, ok := r.LookupName("rat")
	require.True(t, ok)
	require.Len(t, rat.Template().Attacks, 2)
	require.Len(t, rat.Template().Loot, 2)
	assert.Len(t, rat.Template().Loot[1].Children, 1)

	wolf, ok := r.LookupName("wolf")
	require.True(t, ok)
	assert.Equal(t, int64(18), wolf.Template().Experience)
}

func TestDirSource_WrongIndexRoot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "monster"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "monster", "monsters.xml"), []byte(`<creatures/>`), 0o644))

	_, err := newTestRegistry().Load(NewDirSource(dir))
	var de *DocumentError
	assert.True(t, errors.As(err, &de))
}

func TestDirSource_RejectsEscapingPath(t *testing.T) {
	_, err := NewDirSource(t.TempDir()).Open(Entry{Name: "x", File: "../x.xml"})
	assert.Error(t, err)
}

func (r *Registry) mustTemplate(t *testing.T, name string) *model.CreatureTemplate {
	t.Helper()
	h, ok := r.LookupName(name)
	require.True(t, ok)
	return h.Template()
}
