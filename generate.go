package lzham

//go:generate go run ./cmd/lzham-build generate --target x86_64-unknown-linux-gnu
//go:generate go run ./cmd/lzham-build generate --target x86_64-unknown-linux-musl
//go:generate go run ./cmd/lzham-build generate --target aarch64-apple-darwin
//go:generate go run ./cmd/lzham-build generate --target x86_64-pc-windows-gnu
