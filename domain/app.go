package domain

// AppTitle is the display name used in the header and CLI output.
const AppTitle = "TerminalQA"
