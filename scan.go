package lnp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

const scanWorkers = 4

// findMods emits the directory of every mod in the pack. Each immediate
// subdirectory of the mods directory is one mod.
func (l *LNP) findMods(ctx context.Context) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)

		entries, err := os.ReadDir(l.paths.Mods)
		if err != nil {
			errc <- err
			return
		}

		for _, e := range entries {
			// Ignore hidden directories such as version control checkouts
			if !e.IsDir() || e.Name()[0] == '.' {
				continue
			}

			select {
			case out <- filepath.Join(l.paths.Mods, e.Name()):
			case <-ctx.Done():
				errc <- errors.New("scan cancelled")
				return
			}
		}
		errc <- nil
	}()
	return out, errc, nil
}

// modWorker checksums each mod directory it receives and records it in
// the mod store.
func (l *LNP) modWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for dir := range in {
			crc, err := crcDir(dir)
			if err != nil {
				errc <- err
				return
			}

			name := filepath.Base(dir)
			if err := l.db.Upsert(name, crc); err != nil {
				errc <- err
				return
			}
			l.logger.Printf("scanned mod \"%s\", CRC \"%s\"\n", name, crc)
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// ScanMods walks the pack's mods directory, checksumming every mod and
// bringing the mod store in sync with what is on disk.
func (l *LNP) ScanMods() error {
	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	mods, errc, err := l.findMods(ctx)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < scanWorkers; i++ {
		errc, err := l.modWorker(ctx, mods)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	if err := waitForPipeline(errcList...); err != nil {
		return err
	}

	return l.pruneMods()
}

// pruneMods forgets mods whose directory has been removed and compacts
// the remaining merge order.
func (l *LNP) pruneMods() error {
	mods, err := l.db.List()
	if err != nil {
		return err
	}

	var keep []string
	for _, m := range mods {
		if _, err := os.Stat(filepath.Join(l.paths.Mods, m.Name)); err != nil {
			if err := l.db.Remove(m.Name); err != nil {
				return err
			}
			continue
		}
		keep = append(keep, m.Name)
	}

	return l.db.Reorder(keep)
}
