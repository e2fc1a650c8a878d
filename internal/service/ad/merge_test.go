package ad

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("stub"), 0o644); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", path, err)
	}
}

func TestCollectClips(t *testing.T) {
	dir := t.TempDir()

	// 场景 1/2/5 有带后缀的片段，场景 4 只有无后缀的兜底命名，场景 3 缺失
	touch(t, filepath.Join(dir, "demo_p1_sora_2.mp4"))
	touch(t, filepath.Join(dir, "demo_p2_sora_2.mp4"))
	touch(t, filepath.Join(dir, "demo_p4.mp4"))
	touch(t, filepath.Join(dir, "demo_p5_sora_2.mp4"))
	// 场景 5 两种命名都在，后缀版本必须胜出
	touch(t, filepath.Join(dir, "demo_p5.mp4"))

	clips, missing := collectClips(dir, "demo", "sora_2", []int{1, 2, 3, 4, 5})

	wantClips := []string{
		filepath.Join(dir, "demo_p1_sora_2.mp4"),
		filepath.Join(dir, "demo_p2_sora_2.mp4"),
		filepath.Join(dir, "demo_p4.mp4"),
		filepath.Join(dir, "demo_p5_sora_2.mp4"),
	}
	if !reflect.DeepEqual(clips, wantClips) {
		t.Errorf("collectClips() clips = %v, want %v", clips, wantClips)
	}
	if !reflect.DeepEqual(missing, []int{3}) {
		t.Errorf("collectClips() missing = %v, want [3]", missing)
	}

	// 同一目录重复收集结果必须一致
	again, _ := collectClips(dir, "demo", "sora_2", []int{1, 2, 3, 4, 5})
	if !reflect.DeepEqual(again, clips) {
		t.Errorf("collectClips() second pass = %v, want %v", again, clips)
	}
}

func TestCollectClipsEmpty(t *testing.T) {
	dir := t.TempDir()

	clips, missing := collectClips(dir, "demo", "veo_3", []int{1, 2})
	if len(clips) != 0 {
		t.Errorf("collectClips() clips = %v, want empty", clips)
	}
	if !reflect.DeepEqual(missing, []int{1, 2}) {
		t.Errorf("collectClips() missing = %v, want [1 2]", missing)
	}
}
