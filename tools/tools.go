package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/michelgermain/gnucash-expenses/internal/report"
)

// RegisterTools adds the expense report tools to the server.
func RegisterTools(s *server.MCPServer, svc *report.Service) {
	s.AddTool(expenseReportTool(), expenseReportHandler(svc))
	s.AddTool(listAccountsTool(), listAccountsHandler(svc))
}

func expenseReportTool() mcp.Tool {
	return mcp.NewTool("expense_report",
		mcp.WithDescription("Report every transaction posted under the given accounts, converted into each account's currency, followed by the expenses summarized by category in both currencies."),
		mcp.WithString("accounts",
			mcp.Description("Comma-separated full account names, e.g. \"Assets:Bank,Liabilities:Visa\". Defaults to the configured accounts."),
		),
	)
}

func expenseReportHandler(svc *report.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		accounts := splitAccounts(mcp.ParseString(request, "accounts", ""))
		result, err := svc.ExpenseReport(ctx, accounts)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(result), nil
	}
}

func listAccountsTool() mcp.Tool {
	return mcp.NewTool("list_accounts",
		mcp.WithDescription("List all accounts by full name with their type and currency, one per line."),
	)
}

func listAccountsHandler(svc *report.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := svc.ListAccounts(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(result), nil
	}
}

func splitAccounts(s string) []string {
	var out []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
