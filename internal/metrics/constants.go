package metrics

// Metric names
const (
	MetricNameCreatureTemplates     = "bestiary_creature_templates"
	MetricNameTemplateLoads         = "bestiary_template_loads_total"
	MetricNameTemplateReloads       = "bestiary_template_reloads_total"
	MetricNameAbilityCompileErrors  = "bestiary_ability_compile_errors_total"
	MetricNameLootGenerations       = "bestiary_loot_generations_total"
	MetricNameLootItemsGenerated    = "bestiary_loot_items_generated_total"
	MetricNameLootContainersDropped = "bestiary_loot_empty_containers_discarded_total"
)

// Help text
const (
	HelpTextCreatureTemplates     = "Number of creature templates currently published in the registry"
	HelpTextTemplateLoads         = "Creature records processed by load passes, by result"
	HelpTextTemplateReloads       = "Single-template reloads, by result"
	HelpTextAbilityCompileErrors  = "Abilities dropped at compile time, by reason"
	HelpTextLootGenerations       = "Number of loot generation passes"
	HelpTextLootItemsGenerated    = "Item instances produced by loot generation"
	HelpTextLootContainersDropped = "Generated containers discarded because they ended up empty"
)

// Labels
const (
	LabelResult = "result"
	LabelReason = "reason"
)

// Label values
const (
	ResultLoaded  = "loaded"
	ResultSkipped = "skipped"
	ResultOK      = "ok"
	ResultFailed  = "failed"
)
