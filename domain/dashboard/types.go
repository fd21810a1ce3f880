// Package dashboard defines chart specifications, KPI values, and the
// assembled dashboard document. Widgets are a closed sum discriminated by
// kind rather than free-form maps.
package dashboard

import (
	"encoding/json"
	"fmt"

	"autodash/domain/core"
)

// ChartType identifies the visual form of a chart widget
type ChartType string

const (
	ChartLine    ChartType = "line"
	ChartBar     ChartType = "bar"
	ChartScatter ChartType = "scatter"
)

// Aggregation is how chart y-values are combined per distinct x
type Aggregation string

const (
	AggregationNone Aggregation = "none"
	AggregationMean Aggregation = "mean"
	AggregationSum  Aggregation = "sum"
)

// ChartSpec is a recommended chart before data materialization
type ChartSpec struct {
	ChartType   ChartType   `json:"chart_type"`
	X           string      `json:"x"`
	Y           string      `json:"y"`
	Aggregation Aggregation `json:"aggregation"`
	Reason      string      `json:"reason"`
}

// KPI is a computed headline metric, before a widget id is assigned
type KPI struct {
	Name   string  `json:"name"`
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
	Format string  `json:"format"`
}

// WidgetKind discriminates the widget sum type
type WidgetKind string

const (
	WidgetKPI   WidgetKind = "kpi"
	WidgetChart WidgetKind = "chart"
)

// Widget is one visual element of a dashboard: a KPIWidget or a ChartWidget
type Widget interface {
	ID() core.ID
	Kind() WidgetKind
}

// KPIWidget is a KPI with its assigned widget id
type KPIWidget struct {
	WidgetID core.ID    `json:"widget_id"`
	Type     WidgetKind `json:"type"`
	Name     string     `json:"name"`
	Metric   string     `json:"metric"`
	Value    float64    `json:"value"`
	Format   string     `json:"format"`
}

func (w KPIWidget) ID() core.ID      { return w.WidgetID }
func (w KPIWidget) Kind() WidgetKind { return WidgetKPI }

// NewKPIWidget assigns a fresh widget id to a KPI
func NewKPIWidget(kpi KPI) KPIWidget {
	return KPIWidget{
		WidgetID: core.NewID(),
		Type:     WidgetKPI,
		Name:     kpi.Name,
		Metric:   kpi.Metric,
		Value:    kpi.Value,
		Format:   kpi.Format,
	}
}

// DataPoint is one materialized chart record
type DataPoint struct {
	X interface{} `json:"x"`
	Y float64     `json:"y"`
}

// ChartWidget is a chart spec with materialized data. Raw-mode data is capped
// at 200 rows.
type ChartWidget struct {
	WidgetID    core.ID     `json:"widget_id"`
	Type        WidgetKind  `json:"type"`
	ChartType   ChartType   `json:"chart_type"`
	X           string      `json:"x"`
	Y           string      `json:"y"`
	Aggregation Aggregation `json:"aggregation"`
	Data        []DataPoint `json:"data"`
}

func (w ChartWidget) ID() core.ID      { return w.WidgetID }
func (w ChartWidget) Kind() WidgetKind { return WidgetChart }

// NewChartWidget assigns a fresh widget id to a materialized chart
func NewChartWidget(spec ChartSpec, data []DataPoint) ChartWidget {
	if data == nil {
		data = []DataPoint{}
	}
	return ChartWidget{
		WidgetID:    core.NewID(),
		Type:        WidgetChart,
		ChartType:   spec.ChartType,
		X:           spec.X,
		Y:           spec.Y,
		Aggregation: spec.Aggregation,
		Data:        data,
	}
}

// Dashboard is an assembled collection of widgets for one dataset
type Dashboard struct {
	DashboardID core.DashboardID `json:"dashboard_id"`
	DatasetID   core.DatasetID   `json:"dataset_id"`
	Title       string           `json:"title"`
	Widgets     []Widget         `json:"widgets"`
}

// UnmarshalJSON decodes widgets back into their concrete variants by kind
func (d *Dashboard) UnmarshalJSON(data []byte) error {
	var raw struct {
		DashboardID core.DashboardID  `json:"dashboard_id"`
		DatasetID   core.DatasetID    `json:"dataset_id"`
		Title       string            `json:"title"`
		Widgets     []json.RawMessage `json:"widgets"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	d.DashboardID = raw.DashboardID
	d.DatasetID = raw.DatasetID
	d.Title = raw.Title
	d.Widgets = make([]Widget, 0, len(raw.Widgets))

	for _, msg := range raw.Widgets {
		var head struct {
			Type WidgetKind `json:"type"`
		}
		if err := json.Unmarshal(msg, &head); err != nil {
			return err
		}
		switch head.Type {
		case WidgetKPI:
			var w KPIWidget
			if err := json.Unmarshal(msg, &w); err != nil {
				return err
			}
			d.Widgets = append(d.Widgets, w)
		case WidgetChart:
			var w ChartWidget
			if err := json.Unmarshal(msg, &w); err != nil {
				return err
			}
			d.Widgets = append(d.Widgets, w)
		default:
			return fmt.Errorf("unknown widget kind: %q", head.Type)
		}
	}
	return nil
}
