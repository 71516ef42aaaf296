package container

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/klauspost/compress/flate"
)

// Сериализация документа: zip-контейнер с JSON-манифестом и потоком
// на каждый ресурс. Флаг deflate включает сжатие потоков, флаг garbage -
// сборку неиспользуемых ресурсов перед записью.

const manifestName = "manifest.json"

type manifest struct {
	Version   int                `json:"version"`
	Pages     []pageManifest     `json:"pages"`
	Resources []resourceManifest `json:"resources"`
}

type pageManifest struct {
	Width      float64             `json:"width"`
	Height     float64             `json:"height"`
	Images     []string            `json:"images"`
	Placements []placementManifest `json:"placements"`
}

type placementManifest struct {
	Resource string  `json:"resource"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

type resourceManifest struct {
	ID         string `json:"id"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Components int    `json:"components"`
	Entry      string `json:"entry"`
}

func resourceEntry(id string) string {
	return "resources/" + id
}

// Save сериализует документ в файл
func (d *Document) Save(path string, garbage, deflate bool) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return d.Write(file, garbage, deflate)
}

// Write сериализует документ в произвольный writer
func (d *Document) Write(w io.Writer, garbage, deflate bool) error {
	if garbage {
		d.garbageCollect()
	}

	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	method := zip.Store
	if deflate {
		method = zip.Deflate
	}

	m := manifest{Version: 1}
	for _, page := range d.pages {
		pm := pageManifest{
			Width:  page.rect.Width,
			Height: page.rect.Height,
			Images: append([]string{}, page.refs...),
		}
		for _, pl := range page.placements {
			pm.Placements = append(pm.Placements, placementManifest{
				Resource: pl.ResourceID,
				Width:    pl.Rect.Width,
				Height:   pl.Rect.Height,
			})
		}
		m.Pages = append(m.Pages, pm)
	}

	ids := make([]string, 0, len(d.resources))
	for id := range d.resources {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		res := d.resources[id]
		m.Resources = append(m.Resources, resourceManifest{
			ID:         res.ID,
			Width:      res.Width,
			Height:     res.Height,
			Components: res.Components,
			Entry:      resourceEntry(res.ID),
		})
	}

	data, err := json.Marshal(m)
	if err != nil {
		return err
	}

	mw, err := zw.CreateHeader(&zip.FileHeader{Name: manifestName, Method: method})
	if err != nil {
		return err
	}
	if _, err := mw.Write(data); err != nil {
		return err
	}

	for _, id := range ids {
		res := d.resources[id]
		rw, err := zw.CreateHeader(&zip.FileHeader{Name: resourceEntry(id), Method: method})
		if err != nil {
			return err
		}
		if _, err := rw.Write(res.Data); err != nil {
			return err
		}
	}

	return zw.Close()
}

// Open читает документ из файла
func Open(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	return Read(file, info.Size())
}

// Read восстанавливает граф документа из сериализованного контейнера
func Read(r io.ReaderAt, size int64) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("read container: %w", err)
	}

	var m manifest
	found := false
	for _, f := range zr.File {
		if f.Name != manifestName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		err = json.NewDecoder(rc).Decode(&m)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("decode manifest: %w", err)
		}
		found = true
		break
	}
	if !found {
		return nil, fmt.Errorf("container has no manifest")
	}

	doc := NewDocument()

	streams := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		streams[f.Name] = f
	}

	for _, rm := range m.Resources {
		f, ok := streams[rm.Entry]
		if !ok {
			return nil, fmt.Errorf("resource stream %s missing", rm.Entry)
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		doc.resources[rm.ID] = &ImageResource{
			ID:         rm.ID,
			Data:       data,
			Width:      rm.Width,
			Height:     rm.Height,
			Components: rm.Components,
		}
	}

	for _, pm := range m.Pages {
		page := doc.AddPage(Rect{Width: pm.Width, Height: pm.Height})
		page.refs = append(page.refs, pm.Images...)
		for _, pl := range pm.Placements {
			page.placements = append(page.placements, Placement{
				ResourceID: pl.Resource,
				Rect:       Rect{Width: pl.Width, Height: pl.Height},
			})
		}
	}

	return doc, nil
}
