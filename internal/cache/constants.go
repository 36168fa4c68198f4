package cache

// DefaultKeyPrefix namespaces keys written to a shared Redis
const DefaultKeyPrefix = "mine-idler"
