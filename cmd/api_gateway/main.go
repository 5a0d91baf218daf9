package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"

	"github.com/ridloal/cc-ecommerce/internal/platform/config"
	"github.com/ridloal/cc-ecommerce/internal/platform/logger"
	"github.com/ridloal/cc-ecommerce/internal/platform/server"
)

func newSingleHostReverseProxy(targetHost string) (*httputil.ReverseProxy, error) {
	targetURL, err := url.Parse(targetHost)
	if err != nil {
		return nil, fmt.Errorf("failed to parse target URL '%s': %w", targetHost, err)
	}
	if targetURL.Scheme == "" || targetURL.Host == "" {
		return nil, fmt.Errorf("target URL '%s' must include scheme and host", targetHost)
	}

	proxy := httputil.NewSingleHostReverseProxy(targetURL)
	proxy.ErrorHandler = func(rw http.ResponseWriter, req *http.Request, err error) {
		logger.Error("Gateway: proxy error", err, "method", req.Method, "path", req.URL.Path, "target", targetURL.String())
		http.Error(rw, "Service unavailable or proxy error", http.StatusBadGateway)
	}
	return proxy, nil
}

// newGatewayMux routes every product and order path, with and without the
// /api/v1 prefix, to the owning service. Paths are forwarded unchanged.
func newGatewayMux(cfg config.GatewayConfig) (*http.ServeMux, error) {
	serviceMappings := map[string]string{
		"/products":         cfg.ProductServiceURL,
		"/products/":        cfg.ProductServiceURL,
		"/api/v1/products":  cfg.ProductServiceURL,
		"/api/v1/products/": cfg.ProductServiceURL,
		"/orders":           cfg.OrderServiceURL,
		"/orders/":          cfg.OrderServiceURL,
		"/api/v1/orders":    cfg.OrderServiceURL,
		"/api/v1/orders/":   cfg.OrderServiceURL,
	}

	mux := http.NewServeMux()
	proxies := map[string]*httputil.ReverseProxy{}
	for pathPrefix, targetHost := range serviceMappings {
		proxy, ok := proxies[targetHost]
		if !ok {
			var err error
			proxy, err = newSingleHostReverseProxy(targetHost)
			if err != nil {
				return nil, err
			}
			proxies[targetHost] = proxy
		}
		mux.Handle(pathPrefix, proxy)
		logger.Info(fmt.Sprintf("Routing %s to %s", pathPrefix, targetHost))
	}
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	return mux, nil
}

func main() {
	cfg := config.LoadGatewayConfig()
	serverCfg := config.LoadServerConfig(cfg.ListenPort)
	logger.Init(logger.Options{Service: "api_gateway", Env: serverCfg.AppEnv, Level: serverCfg.LogLevel})
	logger.Info("Starting API Gateway on port " + cfg.ListenPort)

	mux, err := newGatewayMux(cfg)
	if err != nil {
		logger.Error("API Gateway misconfigured", err)
		os.Exit(1)
	}

	ctx, stop := server.WithSignals(context.Background())
	defer stop()

	if err := server.Run(ctx, ":"+cfg.ListenPort, mux, serverCfg.ShutdownTimeout); err != nil {
		logger.Error("API Gateway failed to start or crashed", err)
		os.Exit(1)
	}
}
