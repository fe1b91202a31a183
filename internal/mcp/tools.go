package mcp

import "github.com/mark3labs/mcp-go/mcp"

var syncToolDef = mcp.NewTool("aln_sync",
	mcp.WithDescription("Fetch memory-token elements from the document database, resolve their media assets, and write tokens.json for the scanner and player app."),
	mcp.WithString("output_path",
		mcp.Description("Override the configured tokens.json location."),
	),
	mcp.WithString("filter_status",
		mcp.Description("Only include elements whose Status matches this value."),
	),
	mcp.WithBoolean("render",
		mcp.Description("Generate display BMPs for tokens that have a summary but no image asset."),
	),
)

var graphToolDef = mcp.NewTool("aln_graph",
	mcp.WithDescription("Build the knowledge-graph cache (characters, timeline, narrative threads, current state, analysis) from the document database."),
	mcp.WithString("cache_dir",
		mcp.Description("Override the configured cache directory."),
	),
)

var gapsToolDef = mcp.NewTool("aln_gaps",
	mcp.WithDescription("Analyze narrative coverage: timeline events no character mentions, character details no element covers, and events without evidence."),
	mcp.WithString("output_path",
		mcp.Description("Write the report to this file instead of returning it inline."),
	),
	mcp.WithBoolean("html",
		mcp.Description("Render the report as a standalone HTML page."),
	),
	mcp.WithString("json_path",
		mcp.Description("Also dump the raw analysis data as JSON to this file."),
	),
)

var verifyToolDef = mcp.NewTool("aln_verify",
	mcp.WithDescription("Cross-check every memory token's SF_RFID against the media files on disk and the attachments in the database."),
)

var renderToolDef = mcp.NewTool("aln_render",
	mcp.WithDescription("Generate token display BMPs into both consumer image directories."),
	mcp.WithString("rfid",
		mcp.Description("Render a single token by RFID."),
	),
	mcp.WithString("text",
		mcp.Description("Render this text directly instead of the token's stored summary (requires rfid)."),
	),
	mcp.WithBoolean("placeholder",
		mcp.Description("Regenerate the corrupted-memory placeholder image."),
	),
)

var archiveLogsToolDef = mcp.NewTool("aln_archive_logs",
	mcp.WithDescription("Split old lines out of the backend log files into per-date archive files."),
	mcp.WithString("logs_dir",
		mcp.Description("Override the configured log directory."),
	),
	mcp.WithNumber("cutoff_days",
		mcp.Description("Archive lines older than this many days (default 14)."),
	),
)
