package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/Gurux/gxcommon-go"
	"github.com/Gurux/gxendpoint-go"
	"github.com/Gurux/gxendpoint-go/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/language"
)

var (
	network     = flag.String("n", "tcp", "Network protocol, tcp or udp.")
	mode        = flag.String("mode", "client", "client or server.")
	host        = flag.String("h", "", "Host name. Bind address in server mode.")
	port        = flag.Int("p", 0, "Host port")
	message     = flag.String("m", "", "Send message")
	term        = flag.String("term", "None", "Termination: None, LF, CR, CRLF, ETX or EOT.")
	encName     = flag.String("encoding", "utf-8", "Text encoding.")
	echo        = flag.Bool("echo", false, "UDP server echoes received text.")
	t           = flag.String("t", "", "Trace level.")
	w           = flag.Int("w", 1000, "WaitTime in milliseconds. 0 waits for interrupt in server mode.")
	lang        = flag.String("lang", "", "Used language.")
	metricsAddr = flag.String("metrics", "", "Serve Prometheus metrics on this address.")
)

// endpoint is the part of clients and servers used here.
type endpoint interface {
	gxendpoint.Events
	Close() error
}

func CurrentLanguage() language.Tag {
	langEnv := os.Getenv("LANG")
	if langEnv == "" {
		return language.AmericanEnglish
	}
	langEnv = strings.Split(langEnv, ".")[0]
	tag, err := language.Parse(langEnv)
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}

func main() {
	flag.Parse()
	if *port == 0 || (*mode == "client" && (*host == "" || *message == "")) {
		flag.PrintDefaults()
		return
	}
	protocol, err := gxendpoint.NetworkTypeParse(*network)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return
	}
	termination, err := gxendpoint.TerminationKindParse(*term)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return
	}
	enc, err := htmlindex.Get(*encName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error parsing encoding:", err)
		return
	}
	tag := CurrentLanguage()
	if *lang != "" {
		tag, err = language.Parse(*lang)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error parsing language:", err)
			return
		}
	}
	if *metricsAddr != "" {
		serveMetrics(*metricsAddr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	switch *mode {
	case "client":
		err = runClient(ctx, protocol, termination, enc, tag)
	case "server":
		err = runServer(ctx, protocol, termination, enc, tag)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return
	}
	fmt.Printf("Exit\n")
}

func serveMetrics(addr string) {
	metrics.Register(prometheus.DefaultRegisterer)
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.InstrumentMetricHandler(
		prometheus.DefaultRegisterer, promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
			EnableOpenMetrics: true,
		})))
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Error("metrics server failed")
		}
	}()
}

// setup installs the handlers and trace level shared by all modes.
func setup(e endpoint, tag language.Tag) error {
	e.Localize(tag)
	e.SetOnError(func(sender gxendpoint.Endpoint, err error) {
		fmt.Fprintln(os.Stderr, "error:", err)
	})
	e.SetOnDataReceived(func(sender gxendpoint.Endpoint, e gxendpoint.ReceivedEventArgs) {
		fmt.Printf("Async data: %s\n", e.String())
	})
	e.SetOnStateChanged(func(sender gxendpoint.Endpoint, e gxendpoint.StateChangedEventArgs) {
		fmt.Printf("State change : %s\n", e.String())
	})
	e.SetOnConnected(func(sender gxendpoint.Endpoint) {
		fmt.Printf("Connected: %s\n", sender)
	})
	e.SetOnDisconnected(func(sender gxendpoint.Endpoint) {
		fmt.Printf("Disconnected: %s\n", sender)
	})
	e.SetOnTrace(func(sender gxendpoint.Endpoint, e gxcommon.TraceEventArgs) {
		fmt.Printf("Trace: %s\n", e.String())
	})
	if *t != "" {
		tl, err := gxcommon.TraceLevelParse(*t)
		if err != nil {
			return err
		}
		if err = e.SetTrace(tl); err != nil {
			return err
		}
		logrus.SetLevel(logrus.DebugLevel)
	}
	fmt.Printf("Trace level %s\n", e.GetTrace().String())
	return nil
}

func runClient(ctx context.Context, protocol gxendpoint.NetworkType, termination gxendpoint.TerminationKind, enc encoding.Encoding, tag language.Tag) error {
	var client gxendpoint.Client
	var err error
	if protocol == gxendpoint.NetworkTypeTCP {
		cfg := gxendpoint.DefaultTcpClientConfig()
		cfg.Termination = termination
		cfg.DefaultEncoding = enc
		client, err = gxendpoint.NewGXTcpClient(*host, *port, cfg)
	} else {
		cfg := gxendpoint.DefaultUdpClientConfig()
		cfg.DefaultEncoding = enc
		client, err = gxendpoint.NewGXUdpClient(*host, *port, cfg)
	}
	if err != nil {
		return err
	}
	//Close the connection.
	defer func() {
		if err := client.Close(); err != nil {
			fmt.Fprintln(os.Stderr, "close failed:", err)
		}
	}()
	if err = setup(client, tag); err != nil {
		return err
	}
	fmt.Printf("Host name: %s\n", *host)
	fmt.Printf("Host port: %d\n", *port)
	fmt.Printf("Message: '%s'\n", *message)

	if !client.Connect(ctx) {
		return fmt.Errorf("connect to %s failed", client)
	}
	if err = client.SendString(ctx, *message, gxendpoint.WithTermination(termination)); err != nil {
		return err
	}
	//Wait for the reply.
	select {
	case <-ctx.Done():
	case <-time.After(time.Duration(*w) * time.Millisecond):
	}
	client.Disconnect()
	return nil
}

func runServer(ctx context.Context, protocol gxendpoint.NetworkType, termination gxendpoint.TerminationKind, enc encoding.Encoding, tag language.Tag) error {
	var server gxendpoint.Server
	var err error
	if protocol == gxendpoint.NetworkTypeTCP {
		cfg := gxendpoint.DefaultTcpServerConfig()
		cfg.Termination = termination
		server, err = gxendpoint.NewGXTcpServer(*host, *port, cfg)
	} else {
		cfg := gxendpoint.DefaultUdpServerConfig()
		cfg.Termination = termination
		cfg.DefaultEncoding = enc
		cfg.EchoOnReceivedData = *echo
		server, err = gxendpoint.NewGXUdpServer(*host, *port, cfg)
	}
	if err != nil {
		return err
	}
	defer func() {
		if err := server.Close(); err != nil {
			fmt.Fprintln(os.Stderr, "close failed:", err)
		}
	}()
	if err = setup(server, tag); err != nil {
		return err
	}
	if err = server.Start(); err != nil {
		return err
	}
	fmt.Printf("Listening on %s\n", server)
	if *w == 0 {
		<-ctx.Done()
	} else {
		select {
		case <-ctx.Done():
		case <-time.After(time.Duration(*w) * time.Millisecond):
		}
	}
	server.Stop()
	return nil
}
