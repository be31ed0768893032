package main

const instructions = `# Hudu MCP Server

This server provides access to Hudu IT documentation platform through the Model Context Protocol.

## Available Resources:
- **hudu://companies**, **hudu://companies/{id}** - Company data
- **hudu://assets**, **hudu://assets/{id}** - Asset data
- **hudu://articles**, **hudu://articles/{id}** - Knowledge base articles

## Available Tools (39 total):
- Companies: list, get, create, update, delete, archive, unarchive
- Assets: list, get, create, update, delete, archive
- Asset Layouts: list, get, create, update
- Asset Passwords: list, get, create, update, delete
- Articles: list, get, create, update, delete, archive
- Websites: list, get, create, update, delete
- Folders: list
- Procedures: list
- Activity Logs: list
- Relations: list
- Magic Dash: list
- Utility: test connection

## Authentication:
- HUDU_BASE_URL (required) - Your Hudu instance URL
- HUDU_API_KEY (required) - Your Hudu API key
- In gateway mode, send X-Hudu-Base-URL and X-Hudu-API-Key on every HTTP request instead`
