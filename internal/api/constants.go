package api

// CacheOneDay is the Cache-Control value for downloaded images.
const CacheOneDay = "public, max-age=86400"
