// Package ytdlp shells out to yt-dlp for YouTube video metadata, fanning
// batches across a bounded worker pool.
package ytdlp
