package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/citenav/backend/internal/config"
	"github.com/citenav/backend/internal/util"
	"github.com/citenav/backend/pkg/agent"
	"github.com/citenav/backend/pkg/ai/providers"
	"github.com/citenav/backend/pkg/citegraph"
	"github.com/citenav/backend/pkg/logger"
	"github.com/citenav/backend/pkg/logger/console"
	"github.com/citenav/backend/pkg/papers/semanticscholar"
)

// Terminal harness for the research conversation. Useful for trying
// provider configurations without running the HTTP server.
func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)
	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orchestrator, err := providers.NewOrchestrator(config.LoadProviders())
	if err != nil {
		logger.Fatal("Failed to build provider set", "err", err)
	}

	searchURL, searchKey := config.LoadSearch()
	scholar := semanticscholar.NewClient(semanticscholar.NewClientParams{
		BaseURL: searchURL,
		APIKey:  searchKey,
	})

	a := agent.New(agent.NewAgentParams{
		Orchestrator: orchestrator,
		Search:       scholar,
	})

	fmt.Println("assistant:", agent.Greeting)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "" {
			continue
		}

		result := a.Turn(ctx, line)
		for _, reply := range result.Replies {
			fmt.Println("assistant:", reply)
		}

		if result.Graph != nil {
			printGraphSummary(result.Graph)
			break
		}
		if ctx.Err() != nil {
			break
		}
	}
}

func printGraphSummary(g *citegraph.Graph) {
	fmt.Printf("\nGraph built: %d papers, %d citation links\n", g.NodeCount(), g.EdgeCount())

	ranks := citegraph.PageRank(g)
	nodes := make([]*citegraph.Node, len(g.Nodes))
	copy(nodes, g.Nodes)
	sort.SliceStable(nodes, func(i, j int) bool {
		return ranks[nodes[i].ID] > ranks[nodes[j].ID]
	})

	top := len(nodes)
	if top > 5 {
		top = 5
	}
	fmt.Println("Top papers by PageRank:")
	for _, node := range nodes[:top] {
		fmt.Printf("  %.4f  %s (%d)\n", ranks[node.ID], node.Title, node.Year)
	}
}
