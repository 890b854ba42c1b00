// Copyright (C) 2023 Gobalsky Labs Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package metrics

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// Gauge ...
	Gauge instrument = iota
	// Counter ...
	Counter
	// Histogram ...
	Histogram
	// Summary ...
	Summary
)

var (
	// ErrInstrumentNotSupported signals the specified instrument is not yet supported
	ErrInstrumentNotSupported = errors.New("instrument type unsupported")
	// ErrInstrumentTypeMismatch signal the type of the instrument is not expected
	ErrInstrumentTypeMismatch = errors.New("instrument is not of the expected type")
)

// Buckets of the duration histograms, in seconds.
var durationBuckets = []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

var (
	earningRecordsCounter   *prometheus.CounterVec
	earningsGenerationCount *prometheus.CounterVec
	ordersCounter           *prometheus.CounterVec
	repairCounter           *prometheus.CounterVec
	treeBuildTime           *prometheus.HistogramVec
	sqlQueryTime            *prometheus.HistogramVec
	// Latency of each request type per API, the summary count is the call count
	apiRequestTime *prometheus.SummaryVec

	brokerQueueDepth    prometheus.Gauge
	brokerDroppedEvents prometheus.Counter
)

// abstract prometheus types
type instrument int

// combine all possible prometheus options + way to differentiate between regular or vector type
type instrumentOpts struct {
	opts               prometheus.Opts
	buckets            []float64
	objectives         map[float64]float64
	maxAge             time.Duration
	ageBuckets, bufCap uint32
	vectors            []string
}

type mi struct {
	gauge      prometheus.Gauge
	counterV   *prometheus.CounterVec
	counter    prometheus.Counter
	histogramV *prometheus.HistogramVec
	summaryV   *prometheus.SummaryVec
}

// InstrumentOption - vararg for instrument options setting
type InstrumentOption func(o *instrumentOpts)

// Vectors - configuration used to create a vector of a given interface, slice of label names
func Vectors(labels ...string) InstrumentOption {
	return func(o *instrumentOpts) {
		o.vectors = labels
	}
}

// Help - set the help field on instrument
func Help(help string) InstrumentOption {
	return func(o *instrumentOpts) {
		o.opts.Help = help
	}
}

// Namespace - set namespace
func Namespace(ns string) InstrumentOption {
	return func(o *instrumentOpts) {
		o.opts.Namespace = ns
	}
}

// Subsystem - set subsystem
func Subsystem(s string) InstrumentOption {
	return func(o *instrumentOpts) {
		o.opts.Subsystem = s
	}
}

// Buckets - specific to histogram type
func Buckets(b []float64) InstrumentOption {
	return func(o *instrumentOpts) {
		o.buckets = b
	}
}

// Objectives - specific to summary type
func Objectives(obj map[float64]float64) InstrumentOption {
	return func(o *instrumentOpts) {
		o.objectives = obj
	}
}

// MaxAge - specific to summary type
func MaxAge(m time.Duration) InstrumentOption {
	return func(o *instrumentOpts) {
		o.maxAge = m
	}
}

// AgeBuckets - specific to summary type
func AgeBuckets(ab uint32) InstrumentOption {
	return func(o *instrumentOpts) {
		o.ageBuckets = ab
	}
}

// BufCap - specific to summary type
func BufCap(bc uint32) InstrumentOption {
	return func(o *instrumentOpts) {
		o.bufCap = bc
	}
}

// AddInstrument configures and registers a new metrics instrument. Gauges
// are scalar, histograms and summaries are vectors, counters are either.
func AddInstrument(t instrument, name string, opts ...InstrumentOption) (*mi, error) {
	var col prometheus.Collector
	ret := mi{}
	opt := instrumentOpts{
		opts: prometheus.Opts{
			Name: name,
		},
	}
	// apply options
	for _, o := range opts {
		o(&opt)
	}
	switch {
	case t == Gauge && len(opt.vectors) == 0:
		ret.gauge = prometheus.NewGauge(opt.gauge())
		col = ret.gauge
	case t == Counter && len(opt.vectors) == 0:
		ret.counter = prometheus.NewCounter(opt.counter())
		col = ret.counter
	case t == Counter:
		ret.counterV = prometheus.NewCounterVec(opt.counter(), opt.vectors)
		col = ret.counterV
	case t == Histogram && len(opt.vectors) > 0:
		ret.histogramV = prometheus.NewHistogramVec(opt.histogram(), opt.vectors)
		col = ret.histogramV
	case t == Summary && len(opt.vectors) > 0:
		ret.summaryV = prometheus.NewSummaryVec(opt.summary(), opt.vectors)
		col = ret.summaryV
	default:
		return nil, ErrInstrumentNotSupported
	}
	if err := prometheus.Register(col); err != nil {
		return nil, err
	}
	return &ret, nil
}

// Start enable metrics (given config).
func Start(conf Config) {
	if !conf.Enabled {
		return
	}
	err := setupMetrics()
	if err != nil {
		panic("could not set up metrics")
	}
	http.Handle(conf.Path, promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", conf.Port), nil))
	}()
}

func (i instrumentOpts) gauge() prometheus.GaugeOpts {
	return prometheus.GaugeOpts(i.opts)
}

func (i instrumentOpts) counter() prometheus.CounterOpts {
	return prometheus.CounterOpts(i.opts)
}

func (i instrumentOpts) summary() prometheus.SummaryOpts {
	return prometheus.SummaryOpts{
		Name:        i.opts.Name,
		Namespace:   i.opts.Namespace,
		Subsystem:   i.opts.Subsystem,
		ConstLabels: i.opts.ConstLabels,
		Help:        i.opts.Help,
		Objectives:  i.objectives,
		MaxAge:      i.maxAge,
		AgeBuckets:  i.ageBuckets,
		BufCap:      i.bufCap,
	}
}

func (i instrumentOpts) histogram() prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Name:        i.opts.Name,
		Namespace:   i.opts.Namespace,
		Subsystem:   i.opts.Subsystem,
		ConstLabels: i.opts.ConstLabels,
		Help:        i.opts.Help,
		Buckets:     i.buckets,
	}
}

// Gauge returns a prometheus Gauge instrument
func (m mi) Gauge() (prometheus.Gauge, error) {
	if m.gauge == nil {
		return nil, ErrInstrumentTypeMismatch
	}
	return m.gauge, nil
}

// Counter returns a prometheus Counter instrument
func (m mi) Counter() (prometheus.Counter, error) {
	if m.counter == nil {
		return nil, ErrInstrumentTypeMismatch
	}
	return m.counter, nil
}

// CounterVec returns a prometheus CounterVec instrument
func (m mi) CounterVec() (*prometheus.CounterVec, error) {
	if m.counterV == nil {
		return nil, ErrInstrumentTypeMismatch
	}
	return m.counterV, nil
}

func (m mi) HistogramVec() (*prometheus.HistogramVec, error) {
	if m.histogramV == nil {
		return nil, ErrInstrumentTypeMismatch
	}
	return m.histogramV, nil
}

func (m mi) SummaryVec() (*prometheus.SummaryVec, error) {
	if m.summaryV == nil {
		return nil, ErrInstrumentTypeMismatch
	}
	return m.summaryV, nil
}

func counterVec(name, help string, labels ...string) (*prometheus.CounterVec, error) {
	h, err := AddInstrument(
		Counter,
		name,
		Namespace("earnings"),
		Vectors(labels...),
		Help(help),
	)
	if err != nil {
		return nil, err
	}
	return h.CounterVec()
}

func durationHistogram(subsystem, name, help string, labels ...string) (*prometheus.HistogramVec, error) {
	h, err := AddInstrument(
		Histogram,
		name,
		Namespace("earnings"),
		Subsystem(subsystem),
		Vectors(labels...),
		Buckets(durationBuckets),
		Help(help),
	)
	if err != nil {
		return nil, err
	}
	return h.HistogramVec()
}

func setupMetrics() error {
	var err error

	if earningRecordsCounter, err = counterVec(
		"records_total", "Number of earning records written", "kind"); err != nil {
		return err
	}
	if earningsGenerationCount, err = counterVec(
		"generation_total", "Number of earnings generation attempts", "result"); err != nil {
		return err
	}
	if ordersCounter, err = counterVec(
		"orders_total", "Number of orders submitted", "outcome"); err != nil {
		return err
	}
	if repairCounter, err = counterVec(
		"repair_orders_total", "Orders visited by repair jobs", "job", "outcome"); err != nil {
		return err
	}
	if treeBuildTime, err = durationHistogram(
		"tree", "build_duration_seconds", "Time spent assembling referral trees", "strategy"); err != nil {
		return err
	}

	//
	// SQL timing
	//

	if sqlQueryTime, err = durationHistogram(
		"sql", "query_duration_seconds", "Time spent in each SQL query", "store", "query"); err != nil {
		return err
	}

	//
	// API usage metrics start here
	//

	h, err := AddInstrument(
		Summary,
		"request_duration_seconds",
		Namespace("earnings"),
		Subsystem("api"),
		Vectors("apiType", "requestType"),
		Objectives(map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001}),
		MaxAge(10*time.Minute),
		AgeBuckets(5),
		BufCap(500),
		Help("Latency of API requests"),
	)
	if err != nil {
		return err
	}
	if apiRequestTime, err = h.SummaryVec(); err != nil {
		return err
	}

	//
	// Event broker
	//

	if h, err = AddInstrument(
		Gauge,
		"queue_depth",
		Namespace("earnings"),
		Subsystem("broker"),
		Help("Events waiting to be delivered to the sinks"),
	); err != nil {
		return err
	}
	if brokerQueueDepth, err = h.Gauge(); err != nil {
		return err
	}
	if h, err = AddInstrument(
		Counter,
		"dropped_events_total",
		Namespace("earnings"),
		Subsystem("broker"),
		Help("Events dropped because the queue was full"),
	); err != nil {
		return err
	}
	if brokerDroppedEvents, err = h.Counter(); err != nil {
		return err
	}

	return nil
}

// EarningRecordsAdd counts ledger entries written for the given kind.
func EarningRecordsAdd(kind string, n int) {
	if earningRecordsCounter == nil {
		return
	}
	earningRecordsCounter.WithLabelValues(kind).Add(float64(n))
}

// EarningsGenerationInc counts a generation attempt by outcome
// (generated, already_generated, failed).
func EarningsGenerationInc(result string) {
	if earningsGenerationCount == nil {
		return
	}
	earningsGenerationCount.WithLabelValues(result).Inc()
}

// OrderCounterInc increments the order counter.
func OrderCounterInc(labelValues ...string) {
	if ordersCounter == nil {
		return
	}
	ordersCounter.WithLabelValues(labelValues...).Inc()
}

func RepairInc(job, outcome string) {
	if repairCounter == nil {
		return
	}
	repairCounter.WithLabelValues(job, outcome).Inc()
}

// StartTreeBuild returns a func that records the elapsed build time for the strategy.
func StartTreeBuild(strategy string) func() {
	startTime := time.Now()
	return func() {
		if treeBuildTime == nil {
			return
		}
		treeBuildTime.WithLabelValues(strategy).Observe(time.Since(startTime).Seconds())
	}
}

// StartSQLQuery is meant to be deferred: defer metrics.StartSQLQuery("Members", "GetByCode")().
func StartSQLQuery(store, query string) func() {
	startTime := time.Now()
	return func() {
		if sqlQueryTime == nil {
			return
		}
		sqlQueryTime.WithLabelValues(store, query).Observe(time.Since(startTime).Seconds())
	}
}

// APIRequestAndTimeREST updates the metrics for REST API calls.
func APIRequestAndTimeREST(request string, time float64) {
	if apiRequestTime == nil {
		return
	}
	apiRequestTime.WithLabelValues("REST", request).Observe(time)
}

// BrokerQueueSet records the number of queued events.
func BrokerQueueSet(n int) {
	if brokerQueueDepth == nil {
		return
	}
	brokerQueueDepth.Set(float64(n))
}

func BrokerDroppedInc() {
	if brokerDroppedEvents == nil {
		return
	}
	brokerDroppedEvents.Inc()
}
