package creature

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/udisondev/bestiary/internal/constants"
	"github.com/udisondev/bestiary/internal/game/ability"
	"github.com/udisondev/bestiary/internal/game/loot"
	"github.com/udisondev/bestiary/internal/model"
	"github.com/udisondev/bestiary/internal/record"
)

const recordRoot = "monster"

// Loader builds freestanding creature templates from records.
type Loader struct {
	compiler *ability.Compiler
	rewards  *loot.Builder
}

// NewLoader creates a loader.
func NewLoader(compiler *ability.Compiler, rewards *loot.Builder) *Loader {
	return &Loader{compiler: compiler, rewards: rewards}
}

// Build compiles rec into a new template. The returned template is complete;
// dropped abilities are reported in abilityErrs. err is *DocumentError for a
// wrong root element and *FieldError for a missing required field.
func (l *Loader) Build(rec *record.Node, path string) (tmpl *model.CreatureTemplate, abilityErrs []error, err error) {
	if rec.Name != recordRoot {
		return nil, nil, &DocumentError{Path: path, Root: rec.Name, Want: recordRoot}
	}

	t := model.NewCreatureTemplate()

	name, ok := rec.Attr("name")
	if !ok {
		return nil, nil, &FieldError{Creature: path, Field: "name"}
	}
	t.Name = name

	if v, ok := rec.Attr("nameDescription"); ok {
		t.NameDescription = v
	} else {
		t.NameDescription = strings.ToLower("a " + name)
	}

	if v, ok := rec.Attr("race"); ok {
		if race, ok := parseRace(v); ok {
			t.Race = race
		} else {
			slog.Warn("unknown race", "creature", name, "race", v)
		}
	}

	if v, ok := rec.Int("experience"); ok {
		t.Experience = int64(v)
	}
	if v, ok := rec.Int("speed"); ok {
		t.BaseSpeed = int32(v)
	}
	if v, ok := rec.Int("manacost"); ok {
		t.ManaCost = int32(v)
	}

	health := rec.Child("health")
	if health == nil {
		return nil, nil, &FieldError{Creature: name, Field: "health"}
	}
	now, ok := health.Int("now")
	if !ok {
		return nil, nil, &FieldError{Creature: name, Field: "health.now"}
	}
	healthMax, ok := health.Int("max")
	if !ok {
		return nil, nil, &FieldError{Creature: name, Field: "health.max"}
	}
	t.Health, t.HealthMax = int32(now), int32(healthMax)

	for _, section := range rec.Children {
		switch section.Name {
		case "health":
		case "flags":
			readFlags(section, t)
		case "targetchange":
			readTargetChange(section, t)
		case "strategy":
			if v, ok := section.Int("attack"); ok {
				t.StrategyAttack = int32(v)
			}
			if v, ok := section.Int("defense"); ok {
				t.StrategyDefense = int32(v)
			}
		case "look":
			readLook(section, t)
		case "attacks":
			abilities, errs := l.compiler.CompileList(section.ChildrenNamed("attack"), name)
			t.Attacks = append(t.Attacks, abilities...)
			abilityErrs = append(abilityErrs, errs...)
		case "defenses":
			if v, ok := section.Int("defense"); ok {
				t.Defense = int32(v)
			}
			if v, ok := section.Int("armor"); ok {
				t.Armor = int32(v)
			}
			abilities, errs := l.compiler.CompileList(section.ChildrenNamed("defense"), name)
			t.Defenses = append(t.Defenses, abilities...)
			abilityErrs = append(abilityErrs, errs...)
		case "immunities":
			readImmunities(section, t)
		case "voices":
			readVoices(section, t)
		case "loot":
			t.Loot = append(t.Loot, l.rewards.BuildList(section)...)
		case "elements":
			readElements(section, t)
		case "summons":
			readSummons(section, t)
		case "script":
			for _, ev := range section.ChildrenNamed("event") {
				if v, ok := ev.Attr("name"); ok {
					t.Scripts = append(t.Scripts, v)
				} else {
					slog.Warn("script event without name", "creature", name)
				}
			}
		default:
			slog.Warn("unknown creature section", "creature", name, "section", section.Name)
		}
	}

	return t, abilityErrs, nil
}

func parseRace(v string) (model.Race, bool) {
	code, _ := strconv.Atoi(strings.TrimSpace(v))
	switch {
	case strings.EqualFold(v, "venom") || code == 1:
		return model.RaceVenom, true
	case strings.EqualFold(v, "blood") || code == 2:
		return model.RaceBlood, true
	case strings.EqualFold(v, "undead") || code == 3:
		return model.RaceUndead, true
	case strings.EqualFold(v, "fire") || code == 4:
		return model.RaceFire, true
	default:
		return model.RaceNone, false
	}
}

func readFlags(section *record.Node, t *model.CreatureTemplate) {
	for _, flag := range section.ChildrenNamed("flag") {
		setBool := func(key string, dst *bool) {
			if v, ok := flag.Bool(key); ok {
				*dst = v
			}
		}
		setBool("summonable", &t.Summonable)
		setBool("attackable", &t.Attackable)
		setBool("hostile", &t.Hostile)
		setBool("illusionable", &t.Illusionable)
		setBool("convinceable", &t.Convinceable)
		setBool("pushable", &t.Pushable)
		setBool("canpushitems", &t.CanPushItems)
		setBool("canpushcreatures", &t.CanPushCreatures)
		setBool("lureable", &t.Lureable)

		if v, ok := flag.Int("staticattack"); ok {
			if v < 0 || v > 100 {
				slog.Warn("staticattack out of range", "creature", t.Name, "value", v)
			}
			t.StaticAttack = int32(min(max(v, 0), 100))
		}
		if v, ok := flag.Int("lightlevel"); ok {
			t.LightLevel = int32(v)
		}
		if v, ok := flag.Int("lightcolor"); ok {
			t.LightColor = int32(v)
		}
		if v, ok := flag.Int("targetdistance"); ok {
			t.TargetDistance = int32(max(1, v))
		}
		if v, ok := flag.Int("runonhealth"); ok {
			t.RunAwayHealth = int32(v)
		}
	}

	// A creature that pushes others cannot be pushed.
	if t.CanPushCreatures {
		t.Pushable = false
	}
}

func readTargetChange(section *record.Node, t *model.CreatureTemplate) {
	if v, ok := section.FirstInt("speed", "interval"); ok {
		t.ChangeTargetInterval = int32(max(1, v))
	} else {
		slog.Warn("missing targetchange interval", "creature", t.Name)
	}
	if v, ok := section.Int("chance"); ok {
		t.ChangeTargetChance = int32(v)
	} else {
		slog.Warn("missing targetchange chance", "creature", t.Name)
	}
}

func readLook(section *record.Node, t *model.CreatureTemplate) {
	if v, ok := section.Int("type"); ok {
		t.Outfit.LookType = uint16(v)
		if v, ok := section.Int("head"); ok {
			t.Outfit.LookHead = uint8(v)
		}
		if v, ok := section.Int("body"); ok {
			t.Outfit.LookBody = uint8(v)
		}
		if v, ok := section.Int("legs"); ok {
			t.Outfit.LookLegs = uint8(v)
		}
		if v, ok := section.Int("feet"); ok {
			t.Outfit.LookFeet = uint8(v)
		}
	} else if v, ok := section.Int("typeex"); ok {
		t.Outfit.LookTypeEx = uint16(v)
	} else {
		slog.Warn("missing look type", "creature", t.Name)
	}

	if v, ok := section.Int("corpse"); ok {
		t.LookCorpse = uint16(v)
	}
}

type immunity struct {
	damage    model.CombatType
	condition model.ConditionType
}

var immunities = map[string]immunity{
	"physical":  {damage: model.CombatPhysical},
	"energy":    {damage: model.CombatEnergy, condition: model.ConditionEnergy},
	"fire":      {damage: model.CombatFire, condition: model.ConditionFire},
	"poison":    {damage: model.CombatPoison, condition: model.ConditionPoison},
	"lifedrain": {damage: model.CombatLifeDrain, condition: model.ConditionLifeDrain},
	"paralyze":  {condition: model.ConditionParalyze},
	"outfit":    {condition: model.ConditionOutfit},
	"drunk":     {condition: model.ConditionDrunk},
	"invisible": {condition: model.ConditionInvisible},
}

// legacyImmunityKeys fixes the order legacy per-field immunities are read in.
var legacyImmunityKeys = []string{
	"physical", "energy", "fire", "poison", "lifedrain", "paralyze", "outfit", "drunk", "invisible",
}

func (im immunity) apply(t *model.CreatureTemplate) {
	if im.damage != model.CombatNone {
		t.DamageImmunities = t.DamageImmunities.With(im.damage)
	}
	if im.condition != model.ConditionNone {
		t.ConditionImmunities = t.ConditionImmunities.With(im.condition)
	}
}

func readImmunities(section *record.Node, t *model.CreatureTemplate) {
	for _, node := range section.ChildrenNamed("immunity") {
		if name, ok := node.Attr("name"); ok {
			im, known := immunities[strings.ToLower(name)]
			if !known {
				slog.Warn("unknown immunity name", "creature", t.Name, "name", name)
				continue
			}
			im.apply(t)
			continue
		}

		found := false
		for _, key := range legacyImmunityKeys {
			v, ok := node.Bool(key)
			if !ok {
				continue
			}
			found = true
			if v {
				immunities[key].apply(t)
			}
		}
		if !found {
			slog.Warn("unknown immunity", "creature", t.Name)
		}
	}
}

func readVoices(section *record.Node, t *model.CreatureTemplate) {
	if v, ok := section.FirstInt("speed", "interval"); ok {
		t.VoiceInterval = int32(v)
	} else {
		slog.Warn("missing voices interval", "creature", t.Name)
	}
	if v, ok := section.Int("chance"); ok {
		t.VoiceChance = int32(v)
	} else {
		slog.Warn("missing voices chance", "creature", t.Name)
	}

	for _, node := range section.ChildrenNamed("voice") {
		var voice model.Voice
		if v, ok := node.Attr("sentence"); ok {
			voice.Text = v
		} else {
			slog.Warn("missing voice sentence", "creature", t.Name)
		}
		if v, ok := node.Bool("yell"); ok {
			voice.IsYell = v
		}
		t.Voices = append(t.Voices, voice)
	}
}

var elementKeys = []struct {
	attr   string
	combat model.CombatType
}{
	{"physicalPercent", model.CombatPhysical},
	{"poisonPercent", model.CombatPoison},
	{"firePercent", model.CombatFire},
	{"energyPercent", model.CombatEnergy},
}

func readElements(section *record.Node, t *model.CreatureTemplate) {
	for _, node := range section.ChildrenNamed("element") {
		for _, key := range elementKeys {
			if v, ok := node.Int(key.attr); ok {
				t.Elements[key.combat] = int32(v)
			}
		}
	}
}

func readSummons(section *record.Node, t *model.CreatureTemplate) {
	if v, ok := section.Int("maxSummons"); ok {
		t.MaxSummons = int32(min(v, constants.MaxSummons))
	} else {
		slog.Warn("missing summons maxSummons", "creature", t.Name)
	}

	for _, node := range section.ChildrenNamed("summon") {
		s := model.Summon{
			Chance:   constants.DefaultSummonChance,
			Interval: constants.DefaultSummonInterval,
		}
		if v, ok := node.FirstInt("speed", "interval"); ok {
			s.Interval = int32(v)
		}
		if v, ok := node.Int("chance"); ok {
			s.Chance = int32(v)
		}
		name, ok := node.Attr("name")
		if !ok {
			slog.Warn("missing summon name", "creature", t.Name)
			continue
		}
		s.Name = name
		t.Summons = append(t.Summons, s)
	}
}
