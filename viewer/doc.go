// Package viewer 通过本地 HTTP API 暴露宿主游戏服务的在线玩家。
//
// # 组成
//
// Directory 读取宿主当前在线玩家并按 UUID 查找；投影函数（ToSnapshot、
// ToInventoryView、ToPositionView）把实时玩家句柄转换为一次性的 JSON 快照；
// Dispatcher 执行管理命令（踢出、私信）；Router 负责路径解析、方法校验以及
// 错误到 HTTP 状态码的映射。
//
// # 宿主
//
// 本包只依赖 Host / PlayerHandle 接口，宿主实例通过 HostRef 在启动时注入。
// 未注入宿主时所有读取都视为“没有玩家”，而不是错误。本包不加锁：
// 每个字段在请求处理时读取一次，跨字段一致性由宿主负责（尽力而为）。
//
// # 路由
//
//	GET  /players                    在线玩家快照数组
//	*    /players/{uuid}/inventory   物品栏（跳过空格）
//	*    /players/{uuid}/position    方块坐标与维度
//	POST /players/{uuid}/kick        {"reason"?: string}
//	POST /players/{uuid}/message     {"message"?: string}
//
// 所有响应均为 JSON；错误形如 {"error": "..."}。
package viewer
