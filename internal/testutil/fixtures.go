package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// MGF holds three spectra. Spectrum 1 has no CHARGE header and spectrum 2 is MS3.
const MGF = `# sample peak list
BEGIN IONS
TITLE=scan=1
PEPMASS=523.7745 15000.5
CHARGE=2+
RTINSECONDS=120.5
100.1 10
200.2 20
300.3 30
END IONS

BEGIN IONS
TITLE=scan=2
PEPMASS=445.12
RTINSECONDS=130
150.0 5
250.0 7
END IONS

BEGIN IONS
TITLE=scan=3
PEPMASS=612.3 900
CHARGE=3+
MSLEVEL=3
110.5 1
END IONS
`

// PSMTable references spectra of two peak-list files (SD_1 and SD_2).
// P1 has a sequence and two PSMs, P2 one PSM, P3 is declared by a directive only.
const PSMTable = "#meta\tsoftware\tTestEngine 1.0\n" +
	"#meta\tsearch_database\tuniprot_human\n" +
	"#spectra_data\tSD_1\trun1\t/data/run1.mgf\tMGF\n" +
	"#spectra_data\tSD_2\trun2\t/data/run2.mgf\tMGF\n" +
	"#protein\tP1\tsp|P1|TEST\tMKTAYIAKQR\t42.5\t10\t0\tfirst protein\n" +
	"#protein\tP2\tsp|P2|TEST\tPEPTIDEK\t8\t10\tdecoy\tsecond protein\n" +
	"#protein\tP3\tsp|P3|TEST\tGGGG\t\t\t\t\n" +
	"#group\tG1\tP1\tP2=psm_3\n" +
	"#group\tG2\tP2=psm_9\n" +
	"psm_id\tspectrum_ref\tspectra_file\tsequence\tcharge\texp_mz\tcalc_mz\tscore\trank\tprotein\tstart\tend\tpre\tpost\tdecoy\tmodifications\n" +
	"psm_1\t0\tSD_1\tTAYI\t2\t\t\t55.1\t1\tP1\t3\t6\tK\tA\t0\t\n" +
	"psm_2\t2\tSD_1\tAKQR\t\t\t\t12\t1\tP1\t7\t10\tI\t-\t0\t1,Oxidation,UNIMOD:35,15.994915\n" +
	"psm_3\t1\tSD_2\tPEPTIDEK\t2\t465.2\t465.2\t3.5\t1\tP2\t1\t8\t-\t-\t1\t\n"

// WriteFile writes content into a file named name under a per-test directory.
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
	return path
}

// WriteFileIn writes content into dir/name; used when several fixtures share a directory.
func WriteFileIn(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
	return path
}
