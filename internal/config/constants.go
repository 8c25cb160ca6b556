package config

import "time"

// Base application details
const AppName = "marque"
const ConfigDirName = "marque"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "marque.log"

// Highlight behavior
const DefaultHighlightLabel = "mark"
const SidecarExtension = ".marks"

// UI layout
const StatusBarHeight = 1
const DefaultScrollOff = 3

// Status bar
const MessageTimeout = 4 * time.Second

// Clipboard
const SystemClipboard = true
