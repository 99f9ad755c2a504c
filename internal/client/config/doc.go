// Package config loads runtime configuration for the MCP client CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment: OLLAMA_URL.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the backend gRPC endpoint
//	-o string   base URL of the Ollama server
//	-m string   default generation model
//	-l string   path of the local SQLite database
//	-i int      online status check interval (seconds)
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "ollama_url": "http://localhost:11434",
//	  "default_model": "llama3:latest",
//	  "local_db_path": "mcpclient.db",
//	  "online_check_interval": "3s"
//	}
package config
