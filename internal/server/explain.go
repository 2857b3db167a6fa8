package server

const explainOverview = `holster manages the JSON configuration file that declares which MCP servers
the host application launches. Entries under "mcpServers" are active and
recognized by the host; entries under "unusedMcpServers" are holstered and
ignored by it. A server name appears in exactly one of the two collections.
Every operation reads the file fresh, applies its change in memory, and
rewrites the whole file atomically, so the file on disk is always valid JSON
and is the single source of truth.`

const explainTools = `create_server(name, command, directory, script)
    Add a new entry. Fails if the name exists in either collection. New
    entries start inactive; call update_server_status to activate them.

list_servers()
    Return {active, inactive}, each a map of name to descriptor. Read-only.

update_server_status(server_names, active)
    Move each named entry into the requested collection. Names already there
    count as updated (idempotent); unknown names are returned in not_found
    and do not fail the batch.

delete_servers(server_names)
    Remove each named entry from whichever collection holds it. Unknown
    names are returned in not_found. Also returns the names remaining in
    each collection.

ping()
    Returns "Pong!" without touching the configuration file.

explain()
    Returns this text.`
