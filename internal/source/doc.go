// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package source fetches timezone data documents from a base location. A
// location is a local directory (plain path or file:// URL), an HTTP(S) base
// URL, or an s3://bucket/prefix URL. Remote and S3 documents are cached on disk
// through cacheutil.
package source
