package mcpserver

// NoteFormat describes the syntax the indexer recognises, for MCP clients
// that want to reason about note content.
const NoteFormat = `# Othala Note Format

Notes are plain text (.md) files. The indexer derives everything else:

- **Title**: the filename without its extension. ` + "`" + `gardening/compost.md` + "`" + `
  has the title ` + "`" + `compost` + "`" + `.
- **Project**: the directory the note lives in. Notes directly under the
  vault root belong to the default (unnamed) project.
- **Links**: wiki-style references, ` + "`" + `[[Other Title]]` + "`" + `. The text between the
  brackets is taken verbatim as the referenced title. Linking to a title
  that does not exist yet is fine; such targets show up in the ` + "`" + `ghosts` + "`" + ` tool.
- **Tags**: hashtag tokens such as ` + "`" + `#gardening` + "`" + ` or ` + "`" + `#note-taking` + "`" + `. A tag
  must be followed by whitespace; a tag as the very last characters of a
  file is not recognised.

Filenames starting with a dot are ignored by the indexer.
`
