package simulator

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mttcabral/ride-dispatch-simulator/internal/cloudwriter"
	"github.com/mttcabral/ride-dispatch-simulator/internal/models"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

// OutputDestination consumes serialized completion records, fanned out by
// topic.
type OutputDestination interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

// ConsoleOutput prints one line per completed ride: finish time, total
// distance, stop count, then every stop coordinate in route order, all at
// two decimal places.
type ConsoleOutput struct{}

func (c *ConsoleOutput) WriteMessage(topic string, msg []byte) error {
	var record models.RideCompletion
	if err := json.Unmarshal(msg, &record); err != nil {
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%.2f %.2f %d", record.FinishTime, record.TotalDistance, record.StopCount)
	for _, p := range record.Path {
		fmt.Fprintf(&sb, " %.2f %.2f", p.X, p.Y)
	}
	sb.WriteByte('\n')

	_, err := os.Stdout.WriteString(sb.String())
	return err
}

func (c *ConsoleOutput) Close() error { return nil }

// JSONOutput appends newline-delimited JSON records to one file per topic.
type JSONOutput struct {
	basePath string
	folder   string
	files    map[string]*os.File
}

func NewJSONOutput(basePath, folder string) *JSONOutput {
	return &JSONOutput{
		basePath: basePath,
		folder:   folder,
		files:    make(map[string]*os.File),
	}
}

func (j *JSONOutput) WriteMessage(topic string, msg []byte) error {
	file, ok := j.files[topic]
	if !ok {
		dir := filepath.Join(j.basePath, j.folder)
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
		f, err := os.Create(filepath.Join(dir, topic+".jsonl"))
		if err != nil {
			return fmt.Errorf("failed to create file for topic %s: %w", topic, err)
		}
		j.files[topic] = f
		file = f
	}

	if _, err := file.Write(msg); err != nil {
		return fmt.Errorf("failed to write message to topic %s: %w", topic, err)
	}
	_, err := file.Write([]byte("\n"))
	return err
}

func (j *JSONOutput) Close() error {
	for _, file := range j.files {
		if err := file.Close(); err != nil {
			return err
		}
	}
	return nil
}

// CSVOutput writes completion records to one CSV file per topic with a fixed
// header. The coordinate path is flattened to semicolon-separated "x y"
// pairs, the passenger list to semicolon-separated ids.
type CSVOutput struct {
	basePath string
	folder   string
	writers  map[string]*csv.Writer
	files    map[string]*os.File
}

var csvHeader = []string{
	"ride_id", "finish_time", "total_distance", "total_duration",
	"efficiency", "stop_count", "path", "passengers",
}

func NewCSVOutput(basePath, folder string) *CSVOutput {
	return &CSVOutput{
		basePath: basePath,
		folder:   folder,
		writers:  make(map[string]*csv.Writer),
		files:    make(map[string]*os.File),
	}
}

func (c *CSVOutput) WriteMessage(topic string, msg []byte) error {
	var record models.RideCompletion
	if err := json.Unmarshal(msg, &record); err != nil {
		return err
	}

	csvWriter, ok := c.writers[topic]
	if !ok {
		dir := filepath.Join(c.basePath, c.folder)
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
		file, err := os.Create(filepath.Join(dir, topic+".csv"))
		if err != nil {
			return err
		}
		c.files[topic] = file
		csvWriter = csv.NewWriter(file)
		c.writers[topic] = csvWriter
		if err := csvWriter.Write(csvHeader); err != nil {
			return err
		}
	}

	row := []string{
		record.RideID,
		strconv.FormatFloat(record.FinishTime, 'f', 2, 64),
		strconv.FormatFloat(record.TotalDistance, 'f', 2, 64),
		strconv.FormatFloat(record.TotalDuration, 'f', 2, 64),
		strconv.FormatFloat(record.Efficiency, 'f', 4, 64),
		strconv.Itoa(record.StopCount),
		flattenPath(record.Path),
		flattenPassengers(record.Passengers),
	}
	if err := csvWriter.Write(row); err != nil {
		return err
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

func (c *CSVOutput) Close() error {
	for topic, csvWriter := range c.writers {
		csvWriter.Flush()
		if err := csvWriter.Error(); err != nil {
			return err
		}
		if err := c.files[topic].Close(); err != nil {
			return err
		}
	}
	return nil
}

func flattenPath(path []models.Point) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = p.String()
	}
	return strings.Join(parts, ";")
}

func flattenPassengers(passengers []models.PassengerRecord) string {
	parts := make([]string, len(passengers))
	for i, p := range passengers {
		parts[i] = p.ID
	}
	return strings.Join(parts, ";")
}

// ParquetOutput writes completion records to one parquet file per topic,
// either on the local filesystem or in cloud object storage.
type ParquetOutput struct {
	basePath           string
	folder             string
	writers            map[string]*writer.ParquetWriter
	files              map[string]source.ParquetFile
	cloudWriterFactory cloudwriter.CloudWriterFactory
	cloudBucketName    string
}

func NewParquetOutput(config *models.Config) (*ParquetOutput, error) {
	p := &ParquetOutput{
		basePath: config.OutputPath,
		folder:   config.OutputFolder,
		writers:  make(map[string]*writer.ParquetWriter),
		files:    make(map[string]source.ParquetFile),
	}

	if config.CloudStorage.Provider != "" {
		var factory cloudwriter.CloudWriterFactory
		var err error

		switch config.CloudStorage.Provider {
		case "s3":
			factory, err = cloudwriter.NewS3WriterFactory(config.CloudStorage.Region)
		default:
			return nil, fmt.Errorf("unsupported cloud storage provider: %s", config.CloudStorage.Provider)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
		}

		p.cloudWriterFactory = factory
		p.cloudBucketName = config.CloudStorage.BucketName
	}

	return p, nil
}

func (p *ParquetOutput) WriteMessage(topic string, msg []byte) error {
	var record models.RideCompletion
	if err := json.Unmarshal(msg, &record); err != nil {
		return err
	}

	pw, ok := p.writers[topic]
	if !ok {
		var err error
		pw, err = p.createNewWriter(topic)
		if err != nil {
			return err
		}
	}

	row := models.RideCompletionRow{
		RideID:        record.RideID,
		FinishTime:    record.FinishTime,
		TotalDistance: record.TotalDistance,
		TotalDuration: record.TotalDuration,
		Efficiency:    record.Efficiency,
		StopCount:     int32(record.StopCount),
		Path:          flattenPath(record.Path),
		Passengers:    flattenPassengers(record.Passengers),
	}
	return pw.Write(row)
}

func (p *ParquetOutput) createNewWriter(topic string) (*writer.ParquetWriter, error) {
	objectPath := filepath.Join(p.folder, topic+".parquet")

	var file source.ParquetFile
	if p.cloudWriterFactory != nil {
		cw, err := p.cloudWriterFactory.NewWriter(p.cloudBucketName, objectPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud writer: %w", err)
		}
		file = NewCloudParquetFile(cw)
	} else {
		dir := filepath.Join(p.basePath, p.folder)
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, err
		}
		var err error
		file, err = local.NewLocalFileWriter(filepath.Join(p.basePath, objectPath))
		if err != nil {
			return nil, fmt.Errorf("failed to create parquet file: %w", err)
		}
	}

	pw, err := writer.NewParquetWriter(file, new(models.RideCompletionRow), 4)
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet writer: %w", err)
	}

	p.files[topic] = file
	p.writers[topic] = pw
	return pw, nil
}

func (p *ParquetOutput) Close() error {
	for topic, pw := range p.writers {
		if err := pw.WriteStop(); err != nil {
			return fmt.Errorf("failed to finalize parquet writer for %s: %w", topic, err)
		}
		if err := p.files[topic].Close(); err != nil {
			return err
		}
	}
	return nil
}

// CloudParquetFile adapts a CloudWriter to the parquet source.ParquetFile
// interface. Cloud objects are write-only: reads and seeks from the end are
// not supported.
type CloudParquetFile struct {
	cloudWriter cloudwriter.CloudWriter
	offset      int64
}

func NewCloudParquetFile(cw cloudwriter.CloudWriter) *CloudParquetFile {
	return &CloudParquetFile{cloudWriter: cw}
}

func (c *CloudParquetFile) Open(name string) (source.ParquetFile, error) {
	return c, nil
}

func (c *CloudParquetFile) Create(name string) (source.ParquetFile, error) {
	return c, nil
}

func (c *CloudParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.offset = offset
	case io.SeekCurrent:
		c.offset += offset
	case io.SeekEnd:
		return 0, fmt.Errorf("seek from end not supported for cloud storage")
	}
	return c.offset, nil
}

func (c *CloudParquetFile) Read(p []byte) (n int, err error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *CloudParquetFile) Write(p []byte) (n int, err error) {
	return c.cloudWriter.Write(p)
}

func (c *CloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}
