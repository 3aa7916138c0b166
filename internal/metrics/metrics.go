package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry metrics
var (
	CreatureTemplates = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameCreatureTemplates,
			Help: HelpTextCreatureTemplates,
		},
	)

	TemplateLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTemplateLoads,
			Help: HelpTextTemplateLoads,
		},
		[]string{LabelResult},
	)

	TemplateReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTemplateReloads,
			Help: HelpTextTemplateReloads,
		},
		[]string{LabelResult},
	)
)

// Compiler metrics
var (
	AbilityCompileErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAbilityCompileErrors,
			Help: HelpTextAbilityCompileErrors,
		},
		[]string{LabelReason},
	)
)

// Loot metrics
var (
	LootGenerations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLootGenerations,
			Help: HelpTextLootGenerations,
		},
	)

	LootItemsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLootItemsGenerated,
			Help: HelpTextLootItemsGenerated,
		},
	)

	LootContainersDiscarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLootContainersDropped,
			Help: HelpTextLootContainersDropped,
		},
	)
)
