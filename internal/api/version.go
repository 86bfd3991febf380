package api

// Version is the service version reported by / and /health.
const Version = "0.1.0"
