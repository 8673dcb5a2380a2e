package mcpserver

// DescriptorFormatContract describes how portfolio content is laid out,
// so LLM consumers can interpret tool output and draft new projects.
const DescriptorFormatContract = `# Folio Content Format

The content tree is static: one directory per category, one directory per
project. Nothing in folio writes to it.

## Layout

` + "```" + `text
<category>/manifest.json            # REQUIRED – lists the category's projects
<category>/<id>/project.json        # REQUIRED – the project descriptor
<category>/<id>/README.md           # OPTIONAL – long-form description
<category>/<id>/media/...           # OPTIONAL – images, gifs, videos
views/*.html                        # page templates
` + "```" + `

## manifest.json

` + "```" + `json
[
  { "id": "dolphin-trainer", "path": "./dolphin-trainer/project.json" }
]
` + "```" + `

Entries load in order. ` + "`" + `projectConfigPath` + "`" + ` is accepted in place of ` + "`" + `path` + "`" + `.
Ids MUST be unique across every category; a duplicate stops the catalog
from loading.

## project.json

` + "```" + `json
{
  "title": "Dolphin Trainer",
  "tagline": "Mixed reality training",
  "shortDescription": "One or two sentences.",
  "initiationDate": "02-03-2021",
  "devStartDate": "15-03-2021",
  "devEndDate": "30-09-2021",
  "platforms": ["HoloLens 2", "Windows"],
  "techStack": ["Unity", "C#"],
  "features": ["Up to three are shown in quick look"],
  "client": "Coastal Marine Park",
  "unityVersion": "2021.3 LTS",
  "projectDuration": "7 months",
  "previewImage": "./media/preview.jpg",
  "media": [
    { "url": "./media/shot.png", "alt": "Screenshot" },
    { "url": "https://www.youtube.com/watch?v=ID", "alt": "Video", "thumbnailUrl": "./media/thumb.jpg" }
  ],
  "externalLinks": [
    { "label": "Case Study", "url": "https://example.com", "iconClass": "fas fa-book" }
  ]
}
` + "```" + `

## Rules

1. **Dates** are ` + "`" + `DD-MM-YYYY` + "`" + `. ` + "`" + `N/A` + "`" + ` or an empty string means unknown; unknown
   end dates sort last (newest first) and never match a year filter.
2. **Relative paths** start with ` + "`" + `./` + "`" + ` and resolve against the project directory.
   Absolute URLs and root-relative paths are used as-is.
3. **Media type** is inferred from the URL: youtube.com, youtu.be, vimeo.com and
   ` + "`" + `.mp4` + "`" + ` are video, ` + "`" + `.gif` + "`" + ` is an animated image, anything else is an image.
   YouTube videos get a thumbnail automatically; other videos fall back to
   ` + "`" + `thumbnailUrl` + "`" + `, then ` + "`" + `previewImage` + "`" + `.
4. **Platforms** match filters exactly and case-sensitively.
5. **External links** without a URL are hidden.
6. **README.md** may start with a YAML front-matter block; it is stripped before
   rendering. GitHub-flavoured Markdown is supported.
`
