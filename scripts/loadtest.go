//go:build ignore

// Loadtest is a concurrent HTTP load testing tool that measures throughput,
// latency percentiles and the service id distribution of the routing service.
//
// Usage:
//
//	go run scripts/loadtest.go -url http://localhost:8080 -concurrency 10 -requests 1000
//	go run scripts/loadtest.go -url http://localhost:8080 -concurrency 50 -requests 5000 -out summary.json
//
// Each request picks a host and path from a fixed mix covering both domains,
// unknown hosts and missing hosts, and is tallied by its X-Service-Id header.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

type target struct {
	host string
	path string
}

var mix = []target{
	{"local-dev-consumer-web.com", "/consumer-web/api/products/query"},
	{"local-dev-consumer-web.com", "/consumer-web"},
	{"local-dev-consumer-web.com", "/static/app.js"},
	{"admin.local-dev-consumer-web.com", "/consumer-web-admin/api/products/query"},
	{"admin.local-dev-consumer-web.com", "/consumer-web-admin-other"},
	{"admin.local-dev-consumer-web.com", "/unrelated"},
	{"unknown.example.com", "/consumer-web"},
	{"", "/consumer-web"},
}

type serviceStats struct {
	Count     int32           `json:"count"`
	Latencies []time.Duration `json:"-"`
}

func main() {
	var (
		url         = flag.String("url", "http://localhost:8080", "Routing service URL")
		concurrency = flag.Int("concurrency", 10, "Number of concurrent workers")
		requests    = flag.Int("requests", 100, "Total number of requests to send")
		timeoutSec  = flag.Int("timeout", 10, "Per-request timeout in seconds")
		outJSON     = flag.String("out", "", "Write JSON summary to this file (optional)")
		verbose     = flag.Bool("v", false, "Verbose per-request logging to stdout")
	)
	flag.Parse()

	client := &http.Client{Timeout: time.Duration(*timeoutSec) * time.Second}

	jobs := make(chan int)
	var wg sync.WaitGroup

	var total, failure int32

	stats := make(map[string]*serviceStats)
	var statsMu sync.Mutex

	testStart := time.Now()

	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for idx := range jobs {
				atomic.AddInt32(&total, 1)
				t := mix[idx%len(mix)]

				req, err := http.NewRequest(http.MethodGet, *url+t.path, nil)
				if err != nil {
					atomic.AddInt32(&failure, 1)
					continue
				}
				req.Host = t.host

				start := time.Now()
				resp, err := client.Do(req)
				dur := time.Since(start)
				if err != nil {
					atomic.AddInt32(&failure, 1)
					if *verbose {
						fmt.Printf("[%d] idx=%d error=%v\n", workerID, idx, err)
					}
					continue
				}
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()

				if resp.StatusCode != http.StatusOK {
					atomic.AddInt32(&failure, 1)
				}

				service := resp.Header.Get("X-Service-Id")
				if service == "" {
					service = "(no decision)"
				}

				statsMu.Lock()
				s, ok := stats[service]
				if !ok {
					s = &serviceStats{}
					stats[service] = s
				}
				s.Count++
				s.Latencies = append(s.Latencies, dur)
				statsMu.Unlock()

				if *verbose {
					fmt.Printf("[%d] idx=%d host=%q path=%s service=%s dur=%v\n", workerID, idx, t.host, t.path, service, dur)
				}
			}
		}(i)
	}

	go func() {
		for i := 0; i < *requests; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	wg.Wait()
	totalDuration := time.Since(testStart)
	throughput := float64(total) / totalDuration.Seconds()

	fmt.Println("--- Load Test Summary ---")
	fmt.Printf("Target: %s\n", *url)
	fmt.Printf("Requests: %d  Concurrency: %d\n", *requests, *concurrency)
	fmt.Printf("Total sent: %d  Failure: %d\n", total, failure)
	fmt.Printf("Duration: %v  Throughput: %.2f req/s\n", totalDuration, throughput)

	type summary struct {
		Count int32   `json:"count"`
		P50   float64 `json:"p50_ms"`
		P95   float64 `json:"p95_ms"`
		P99   float64 `json:"p99_ms"`
	}
	summaries := make(map[string]summary, len(stats))

	fmt.Println("\nService distribution:")
	var keys []string
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		s := stats[k]
		sorted := make([]time.Duration, len(s.Latencies))
		copy(sorted, s.Latencies)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

		sum := summary{
			Count: s.Count,
			P50:   ms(percentile(sorted, 0.50)),
			P95:   ms(percentile(sorted, 0.95)),
			P99:   ms(percentile(sorted, 0.99)),
		}
		summaries[k] = sum

		fmt.Printf("  %-28s count=%d p50=%.3fms p95=%.3fms p99=%.3fms\n", k, sum.Count, sum.P50, sum.P95, sum.P99)
	}

	fmt.Printf("\nGOMAXPROCS=%d  NumGoroutine=%d\n", runtime.GOMAXPROCS(0), runtime.NumGoroutine())

	if *outJSON != "" {
		report := map[string]interface{}{
			"target":         *url,
			"requests":       *requests,
			"concurrency":    *concurrency,
			"total_sent":     total,
			"failure":        failure,
			"duration_ms":    totalDuration.Milliseconds(),
			"throughput_rps": throughput,
			"services":       summaries,
		}

		f, err := os.Create(*outJSON)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create json file: %v\n", err)
			os.Exit(1)
		}
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		enc.Encode(report)
		f.Close()
		fmt.Printf("\nWrote JSON summary to %s\n", *outJSON)
	}

	if failure > 0 {
		os.Exit(2)
	}
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[int(float64(len(sorted)-1)*p)]
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
