package demo

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ValentinKolb/gFlux/cmd/util"
	"github.com/ValentinKolb/gFlux/lib/middleware"
	"github.com/ValentinKolb/gFlux/lib/store"
)

// Action types of the demo application.
const (
	actionIncrement = "counter/increment"
	actionDecrement = "counter/decrement"
)

var (
	// DemoCmd runs the counter demo: a store built from combined reducers,
	// a renderer subscribed to it and a ticker playing the external event
	// source role.
	DemoCmd = &cobra.Command{
		Use:     "demo",
		Short:   "Run the counter demo application",
		Long:    "",
		RunE:    run,
		PreRunE: processDemoConfig,
	}

	demoTicks       = 20
	demoIntervalMs  = 100
	demoMiddleware  = make([]string, 0)
	demoLogLevel    = "info"
	demoDumpMetrics = false
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// add flags
	key := "ticks"
	DemoCmd.Flags().Int(key, 20, util.WrapString("Number of simulated input events to dispatch"))
	key = "interval-ms"
	DemoCmd.Flags().Int(key, 100, util.WrapString("Delay between simulated input events in milliseconds"))
	key = "middleware"
	DemoCmd.Flags().String(key, "logger", util.WrapString("Middlewares to install, outermost first (comma separated - e.g. logger,metrics,recovery)"))
	key = "log-level"
	DemoCmd.Flags().String(key, "info", util.WrapString("Log level for the logger middleware (debug, info, warn, error)"))
	key = "dump-metrics"
	DemoCmd.Flags().Bool(key, false, util.WrapString("Print the metrics set in Prometheus format after the run"))
}

func processDemoConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	demoTicks = viper.GetInt("ticks")
	demoIntervalMs = viper.GetInt("interval-ms")
	demoMiddleware = strings.Split(viper.GetString("middleware"), ",")
	demoLogLevel = viper.GetString("log-level")
	demoDumpMetrics = viper.GetBool("dump-metrics")

	return nil
}

// counterReducer counts increment/decrement actions.
func counterReducer(state any, action store.IAction) any {
	count, _ := state.(int)
	switch action.ActionType() {
	case actionIncrement:
		return count + 1
	case actionDecrement:
		return count - 1
	default:
		return count
	}
}

// journalReducer records the type of every non-bootstrap action.
func journalReducer(state any, action store.IAction) any {
	entries, _ := state.([]string)
	switch action.ActionType() {
	case store.ActionTypeInit, store.ActionTypeReplace:
		return entries
	default:
		return append(entries, action.ActionType())
	}
}

func run(_ *cobra.Command, _ []string) error {
	fmt.Printf("gFlux counter demo (%d events, every %dms)\n\n", demoTicks, demoIntervalMs)

	rootReducer, err := store.CombineReducers(map[string]store.Reducer[any]{
		"counter": counterReducer,
		"journal": journalReducer,
	})
	if err != nil {
		return err
	}

	set := metrics.NewSet()
	mws, err := buildMiddlewares(set)
	if err != nil {
		return err
	}

	var enhancer store.Enhancer[map[string]any]
	if len(mws) > 0 {
		enhancer = middleware.Apply(mws...)
	}

	st, err := store.CreateStore(rootReducer, nil, enhancer)
	if err != nil {
		return err
	}

	// The renderer: reads state through GetState, receives nothing from the
	// dispatch itself.
	unsubscribe, err := st.Subscribe(func() {
		state := st.GetState()
		entries, _ := state["journal"].([]string)
		fmt.Printf("state: counter=%v journal=%d entries\n", state["counter"], len(entries))
	})
	if err != nil {
		return err
	}
	defer unsubscribe()

	creators, err := store.BindActionCreators(map[string]store.ActionCreator{
		"increment": func(args ...any) store.IAction { return store.Action{Type: actionIncrement} },
		"decrement": func(args ...any) store.IAction { return store.Action{Type: actionDecrement} },
	}, st.Dispatch)
	if err != nil {
		return err
	}

	// The ticker plays the external event source role.
	ticker := time.NewTicker(time.Duration(demoIntervalMs) * time.Millisecond)
	defer ticker.Stop()

	for i := 0; i < demoTicks; i++ {
		<-ticker.C

		creator := creators["increment"]
		if (i+1)%5 == 0 {
			creator = creators["decrement"]
		}
		if _, err := creator(); err != nil {
			return err
		}
	}

	state := st.GetState()
	fmt.Printf("\nfinal state: counter=%v\n", state["counter"])

	if demoDumpMetrics {
		fmt.Println("\nmetrics:")
		set.WritePrometheus(os.Stdout)
	}

	return nil
}

// buildMiddlewares creates the middleware chain selected on the command line.
func buildMiddlewares(set *metrics.Set) ([]middleware.Middleware[map[string]any], error) {
	mws := make([]middleware.Middleware[map[string]any], 0, len(demoMiddleware))

	for _, name := range demoMiddleware {
		switch strings.TrimSpace(name) {
		case "":
			// empty --middleware value, nothing to install
		case "logger":
			level, err := middleware.ParseLogLevel(demoLogLevel)
			if err != nil {
				return nil, err
			}
			mws = append(mws, middleware.NewLogger[map[string]any]("demo", level, os.Stdout))
		case "metrics":
			mws = append(mws, middleware.NewMetrics[map[string]any](set))
		case "recovery":
			mws = append(mws, middleware.NewRecovery[map[string]any]())
		default:
			return nil, fmt.Errorf("invalid middleware %s", name)
		}
	}

	return mws, nil
}
