// Command mqttbench load-tests an MQTT v5.0 broker with concurrent
// publishers and subscribers and reports trip-time percentiles.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/vitalvas/mqttwire"
	"github.com/vitalvas/mqttwire/bench"
)

var flags struct {
	endpoint    string
	topic       string
	publishers  int
	subscribers int
	messages    int
	qos         int
	noDelay     bool
	constDelay  time.Duration
	randomDelay string
	verbose     bool
}

var rootCmd = &cobra.Command{
	Use:   "mqttbench",
	Short: "MQTT v5.0 broker load generator",
	Long: `mqttbench connects a fleet of subscribers and publishers to an MQTT
v5.0 broker, pushes timestamped messages through a shared topic, and
reports publish/delivery rates and trip-time percentiles.`,
	RunE: runBench,
}

func init() {
	defaults := bench.DefaultConfig()

	rootCmd.Flags().StringVarP(&flags.endpoint, "endpoint", "e", defaults.Endpoint, "Broker address (host:port or tcp://, tls://, quic:// URL)")
	rootCmd.Flags().StringVarP(&flags.topic, "topic", "t", defaults.Topic, "Topic to publish and subscribe on")
	rootCmd.Flags().IntVarP(&flags.publishers, "publishers", "p", defaults.Publishers, "Number of concurrent publishers")
	rootCmd.Flags().IntVarP(&flags.subscribers, "subscribers", "s", defaults.Subscribers, "Number of concurrent subscribers")
	rootCmd.Flags().IntVarP(&flags.messages, "messages", "m", defaults.Messages, "Messages per publisher")
	rootCmd.Flags().IntVarP(&flags.qos, "qos", "q", int(defaults.QoS), "Quality of service (0, 1, or 2)")
	rootCmd.Flags().BoolVar(&flags.noDelay, "no-delay", false, "Publish back to back with no pacing")
	rootCmd.Flags().DurationVar(&flags.constDelay, "const-delay", 0, "Fixed delay between publishes (e.g. 1ms)")
	rootCmd.Flags().StringVar(&flags.randomDelay, "random-delay", "", "Uniform random delay range as min:max (e.g. 1ms:10ms)")
	rootCmd.Flags().BoolVarP(&flags.verbose, "verbose", "V", false, "Enable debug logging")

	rootCmd.MarkFlagsMutuallyExclusive("no-delay", "const-delay", "random-delay")
}

func buildConfig() (bench.Config, error) {
	cfg := bench.DefaultConfig()
	cfg.Endpoint = flags.endpoint
	cfg.Topic = flags.topic
	cfg.Publishers = flags.publishers
	cfg.Subscribers = flags.subscribers
	cfg.Messages = flags.messages

	if flags.qos < 0 || flags.qos > 2 {
		return cfg, errors.New("qos must be 0, 1, or 2")
	}
	cfg.QoS = mqttwire.QoS(flags.qos)

	switch {
	case flags.noDelay:
		cfg.Delay = bench.Delay{Mode: bench.DelayNone}
	case flags.constDelay > 0:
		cfg.Delay = bench.Delay{Mode: bench.DelayConstant, Constant: flags.constDelay}
	case flags.randomDelay != "":
		delay, err := bench.ParseDelayRange(flags.randomDelay)
		if err != nil {
			return cfg, err
		}
		cfg.Delay = delay
	}

	level := mqttwire.LogLevelInfo
	if flags.verbose {
		level = mqttwire.LogLevelDebug
	}
	cfg.Logger = mqttwire.NewStdLogger(os.Stderr, level)

	return cfg, nil
}

func runBench(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Benchmarking configuration:\n")
	fmt.Printf("Number of concurrent Publishers: %d\n", cfg.Publishers)
	fmt.Printf("Number of concurrent Subscribers: %d\n", cfg.Subscribers)
	fmt.Printf("Benchmarking topic: %s\n", cfg.Topic)
	fmt.Printf("Number of publish messages: %d\n", cfg.Messages)

	report, err := bench.Run(ctx, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Mean departure rate = %.2f packets/second/publisher\n", report.DepartureRate)
	fmt.Printf("Mean arrival rate = %.2f packets/second/subscriber\n", report.ArrivalRate)
	fmt.Printf("Minimum trip time: %v\n", report.Min())
	fmt.Printf("Maximum trip time: %v\n", report.Max())
	fmt.Printf("75th percentile trip time: %v\n", report.Percentile(75))
	fmt.Printf("90th percentile trip time: %v\n", report.Percentile(90))
	fmt.Printf("99th percentile trip time: %v\n", report.Percentile(99))

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
