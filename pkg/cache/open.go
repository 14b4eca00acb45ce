package cache

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Open returns the backend named by rawURL:
//
//	""                     file cache in dir
//	"none"                 null cache
//	"file:///path"         file cache at path
//	"redis://..."          Redis (also rediss://)
//	"mongodb://.../db"     MongoDB (also mongodb+srv://); db defaults to mondrian
func Open(ctx context.Context, rawURL, dir string) (Cache, error) {
	switch rawURL {
	case "":
		return openFile(dir)
	case "none":
		return NewNullCache(), nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse cache url: %w", err)
	}
	switch u.Scheme {
	case "file":
		return openFile(u.Path)
	case "redis", "rediss":
		c, err := NewRedisCache(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "mongodb", "mongodb+srv":
		c, err := NewMongoCache(ctx, rawURL, strings.TrimPrefix(u.Path, "/"))
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported cache url scheme %q", u.Scheme)
	}
}

func openFile(dir string) (Cache, error) {
	c, err := NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return c, nil
}
