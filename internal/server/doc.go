// Package server implements the MCP (Model Context Protocol) server for the
// BlurHash tools.
//
// This package provides a JSON-RPC 2.0 server that lets MCP clients create
// BlurHash placeholders for local images and turn hashes back into images.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - image_load: Load image and get metadata
//   - blurhash_encode: Encode an image or a region of it
//   - blurhash_encode_batch: Encode files and directories concurrently
//   - blurhash_decode: Render a hash as a base64 PNG
//   - blurhash_inspect: Validate a hash and describe its components
//
// Component counts, the encode size limit, the decode size and the punch
// factor default to the values in the config.Config the server was built
// with.
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// The cache persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure), -32602 (arguments that do not
//     parse), -32601 (unknown method) or -32700 (a line that is not JSON)
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New(config.Default())
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
