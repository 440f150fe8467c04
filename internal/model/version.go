package model

// Version is the current envboot release.
const Version = "v3.0.0"

// Title is shown in the selection screen header.
const Title = "Environment Loader"
